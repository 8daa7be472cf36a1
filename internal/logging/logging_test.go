package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatter_Format(t *testing.T) {
	f := &Formatter{}
	entry := &log.Entry{
		Time:    time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC),
		Level:   log.WarnLevel,
		Message: "fetch failed",
		Data: log.Fields{
			FieldCorrelationID: "abc-123",
			"voyage":           7,
			"attempt":          1,
		},
	}

	out, err := f.Format(entry)
	require.NoError(t, err)

	assert.Equal(t, "2024-02-01T10:00:00.000+00:00 WARNING abc-123 fetch failed attempt=1 voyage=7\n", string(out))
}

func TestFormatter_NoCorrelationID(t *testing.T) {
	out, err := (&Formatter{}).Format(&log.Entry{Level: log.InfoLevel, Message: "hello", Data: log.Fields{}})
	require.NoError(t, err)
	assert.Contains(t, string(out), " INFO - hello")
}

func TestCorrelationID(t *testing.T) {
	ctx, id := NewCycle(context.Background())
	assert.NotEmpty(t, id)
	assert.Equal(t, id, CorrelationID(ctx))
	assert.Equal(t, "", CorrelationID(context.Background()))
	assert.Equal(t, id, Entry(ctx).Data[FieldCorrelationID])
}

func TestSetup(t *testing.T) {
	defer log.SetOutput(log.StandardLogger().Out)

	var buf bytes.Buffer
	require.NoError(t, Setup("debug", &buf))
	log.Debug("visible")
	assert.True(t, strings.Contains(buf.String(), "DEBUG - visible"))

	assert.Error(t, Setup("loud", &buf))
}
