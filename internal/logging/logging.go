// Package logging configures logrus for the console and the report
// exporter and carries a correlation id per fetch cycle.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// HeaderCorrelationID is sent with every API request of a fetch cycle.
const HeaderCorrelationID = "X-Correlation-ID"

// FieldCorrelationID is the logrus field holding the id.
const FieldCorrelationID = "cid"

type correlateContextKey string

const correlationIDKey correlateContextKey = HeaderCorrelationID

// Formatter prints "timestamp LEVEL cid message key=value...".
type Formatter struct {
	log.TextFormatter
}

// Format implements logrus.Formatter.
func (f *Formatter) Format(entry *log.Entry) ([]byte, error) {
	timestamp := entry.Time.Format("2006-01-02T15:04:05.000-07:00")

	cid := "-"
	keys := make([]string, 0, len(entry.Data))
	for k, v := range entry.Data {
		if k == FieldCorrelationID {
			cid = fmt.Sprint(v)
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var fields string
	if len(keys) > 0 {
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", k, entry.Data[k]))
		}
		fields = " " + strings.Join(parts, " ")
	}

	line := fmt.Sprintf("%s %s %s %s%s\n",
		timestamp,
		strings.ToUpper(entry.Level.String()),
		cid,
		entry.Message,
		fields,
	)
	return []byte(line), nil
}

// Setup installs the formatter, level and output on the standard logger.
func Setup(level string, out io.Writer) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parsing log level %q: %w", level, err)
	}
	log.SetFormatter(&Formatter{})
	log.SetLevel(lvl)
	log.SetOutput(out)
	return nil
}

// OpenFile opens path for appending, creating its directory. The console
// logs to a file because the terminal belongs to the UI.
func OpenFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}

// WithCorrelationID returns ctx carrying id.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

// NewCycle starts a fetch cycle: a fresh correlation id on ctx.
func NewCycle(ctx context.Context) (context.Context, string) {
	id := uuid.NewString()
	return WithCorrelationID(ctx, id), id
}

// CorrelationID returns the id on ctx, or "".
func CorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(correlationIDKey).(string)
	return id
}

// Entry returns a log entry tagged with the correlation id of ctx.
func Entry(ctx context.Context) *log.Entry {
	if id := CorrelationID(ctx); id != "" {
		return log.WithField(FieldCorrelationID, id)
	}
	return log.NewEntry(log.StandardLogger())
}
