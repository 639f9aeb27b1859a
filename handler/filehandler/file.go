package filehandler

import (
	"bytes"
	"errors"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/philipp01105/lvlog/core"
	"github.com/philipp01105/lvlog/formatter"
	"github.com/philipp01105/lvlog/handler"
)

// FileConfig holds configuration for file handler
type FileConfig struct {
	// Filename is the file to write to. Backups use the same name with a
	// timestamp inserted before the extension.
	Filename string
	// Formatter to use (default: JSONFormatter)
	Formatter formatter.Formatter
	// MaxSizeMB is the size in megabytes at which the file is rotated
	// (default: 100)
	MaxSizeMB int
	// MaxBackups is the number of rotated files to keep (0 keeps all)
	MaxBackups int
	// MaxAgeDays removes backups older than this many days (0 disables)
	MaxAgeDays int
	// Compress gzips rotated files
	Compress bool
	// LocalTime uses local time in backup names instead of UTC
	LocalTime bool
	// RotateInterval forces a rotation on a fixed schedule (0 disables)
	RotateInterval time.Duration
}

// FileHandler writes formatted entries to a size-rotated file.
type FileHandler struct {
	out             *lumberjack.Logger
	formatter       formatter.Formatter
	bufferFormatter formatter.BufferFormatter
	stats           *handler.Stats

	mu     sync.Mutex // guards buf and serializes writes
	buf    bytes.Buffer
	closed bool

	done chan struct{}
	wg   sync.WaitGroup
}

// NewFileHandler creates a new file handler. The file is opened lazily
// on the first write.
func NewFileHandler(cfg FileConfig) (*FileHandler, error) {
	if cfg.Filename == "" {
		return nil, errors.New("filehandler: filename is required")
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewJSONFormatter(formatter.Config{})
	}
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = 100
	}

	h := &FileHandler{
		out: &lumberjack.Logger{
			Filename:   cfg.Filename,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
			LocalTime:  cfg.LocalTime,
		},
		formatter: cfg.Formatter,
		stats:     handler.NewStats(),
		done:      make(chan struct{}),
	}
	h.bufferFormatter, _ = cfg.Formatter.(formatter.BufferFormatter)

	if cfg.RotateInterval > 0 {
		h.wg.Add(1)
		go h.rotateEvery(cfg.RotateInterval)
	}
	return h, nil
}

func (h *FileHandler) rotateEvery(d time.Duration) {
	defer h.wg.Done()
	ticker := time.NewTicker(d)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			_ = h.Rotate()
		case <-h.done:
			return
		}
	}
}

// Handle formats and writes an entry
func (h *FileHandler) Handle(entry *core.Entry) error {
	err := h.write(entry)
	h.stats.Record(entry.Level, err)
	return err
}

func (h *FileHandler) write(entry *core.Entry) error {
	var data []byte
	if h.bufferFormatter == nil {
		var err error
		if data, err = h.formatter.Format(entry); err != nil {
			return err
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return handler.ErrClosed
	}
	if h.bufferFormatter != nil {
		h.buf.Reset()
		h.bufferFormatter.FormatEntry(entry, &h.buf)
		data = h.buf.Bytes()
	}
	_, err := h.out.Write(data)
	return err
}

// Rotate closes the current file and starts a new one.
func (h *FileHandler) Rotate() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return handler.ErrClosed
	}
	return h.out.Rotate()
}

// CanRecycleEntry returns true because entries are written before Handle returns.
func (h *FileHandler) CanRecycleEntry() bool {
	return true
}

// Stats returns a snapshot of the current statistics
func (h *FileHandler) Stats() handler.Snapshot {
	return h.stats.GetSnapshot()
}

// Close stops interval rotation and closes the file.
func (h *FileHandler) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	close(h.done)
	h.mu.Unlock()

	h.wg.Wait()
	return h.out.Close()
}
