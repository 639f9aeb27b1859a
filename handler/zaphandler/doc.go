// Package zaphandler forwards lvlog entries to go.uber.org/zap.
//
// Every record carries two extra fields: "severity" with the emitting
// logger's numeric value and "label" with its name. Custom levels map
// onto the zap level of the built-in band they fall in, so a level at
// 35 is written at zap's info level with severity=35.
package zaphandler
