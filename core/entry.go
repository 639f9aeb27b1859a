package core

import (
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

// Entry is one accepted log record as handed to a handler. Level is the
// emitting logger's own numeric severity for Label; two loggers may
// forward the same label with different values.
type Entry struct {
	Time    time.Time
	Level   Level
	Label   string
	Message string
	// Fields holds the logger's bindings followed by the call-site fields.
	Fields []Field
	Caller CallerInfo
}

// CallerInfo contains information about the caller
type CallerInfo struct {
	File      string
	ShortFile string
	Line      int
	Function  string
	Defined   bool
}

var entryPool = sync.Pool{
	New: func() interface{} {
		return &Entry{
			Fields: make([]Field, 0, 8),
		}
	},
}

// GetEntry retrieves a cleared Entry from the pool
func GetEntry() *Entry {
	e := entryPool.Get().(*Entry)
	e.Time = time.Time{}
	e.Level = 0
	e.Label = ""
	e.Fields = e.Fields[:0]
	e.Caller = CallerInfo{}
	return e
}

// PutEntry returns an Entry to the pool
func PutEntry(e *Entry) {
	if e == nil {
		return
	}
	if cap(e.Fields) > 64 {
		e.Fields = make([]Field, 0, 8)
	}
	e.Fields = e.Fields[:0]
	e.Message = ""
	e.Label = ""
	e.Caller = CallerInfo{}
	entryPool.Put(e)
}

// GetCaller retrieves caller information
func GetCaller(skip int) CallerInfo {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return CallerInfo{}
	}

	fn := runtime.FuncForPC(pc)
	var funcName string
	if fn != nil {
		funcName = fn.Name()
	}

	return CallerInfo{
		File:      file,
		ShortFile: filepath.Base(file),
		Line:      line,
		Function:  funcName,
		Defined:   true,
	}
}
