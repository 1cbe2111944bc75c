package clog

import (
	"bytes"
	"testing"
	"time"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bufferCloser struct {
	bytes.Buffer
	closed bool
}

func (b *bufferCloser) Close() error {
	b.closed = true
	return nil
}

func TestHandleLog(t *testing.T) {
	var out bufferCloser
	h := NewHandler(&out)
	h.now = func() time.Time { return time.Date(2015, 3, 1, 12, 0, 0, 0, time.UTC) }

	logger := &log.Logger{Handler: h, Level: log.InfoLevel}
	logger.WithFields(log.Fields{"pilot": 90000001, "key": 1234}).Warn("Refresh failed")
	logger.Debug("hidden")

	assert.Equal(t, " WARN 2015-03-01 12:00:00 Refresh failed            key=1234 pilot=90000001\n", out.String())
}

func TestSetOutputClosesPrevious(t *testing.T) {
	var first, second bufferCloser
	h := NewHandler(&first)

	h.SetOutput(&second)
	assert.True(t, first.closed)

	h.Close()
	assert.True(t, second.closed)
	require.NoError(t, h.HandleLog(&log.Entry{Level: log.InfoLevel, Message: "dropped"}))
	assert.Empty(t, second.String())
}

func TestSetupRejectsBadLevel(t *testing.T) {
	_, err := Setup(&bufferCloser{}, "loud")
	assert.Error(t, err)
}
