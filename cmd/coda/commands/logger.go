package commands

import (
	"io"
	"sort"

	"github.com/hashicorp/go-hclog"
	"github.com/mackiedrew/coda-client/pkg/coda"
)

// hclogLogger adapts an hclog.Logger to coda.Logger.
type hclogLogger struct {
	logger hclog.Logger
}

// NewLogger returns a coda.Logger writing to w. Debug output is only
// emitted when verbose is set.
func NewLogger(w io.Writer, verbose bool) coda.Logger {
	level := hclog.Warn
	if verbose {
		level = hclog.Debug
	}

	return &hclogLogger{
		logger: hclog.New(&hclog.LoggerOptions{
			Name:   "coda",
			Level:  level,
			Output: w,
		}),
	}
}

func (l *hclogLogger) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, keyValues(fields)...)
}

func (l *hclogLogger) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, keyValues(fields)...)
}

func (l *hclogLogger) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, keyValues(fields)...)
}

func (l *hclogLogger) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, keyValues(fields)...)
}

// keyValues flattens fields into hclog's alternating key/value form, sorted by key.
func keyValues(fields map[string]interface{}) []interface{} {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	args := make([]interface{}, 0, 2*len(keys))
	for _, key := range keys {
		args = append(args, key, fields[key])
	}

	return args
}
