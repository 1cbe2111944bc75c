// Package clog sets up apex/log for pilotd and hands out entries scoped to
// a pilot or an API key.
package clog

import (
	"io"

	"github.com/apex/log"
)

// Setup routes the global apex logger through a Handler writing to w at
// the given level ("debug", "info", "warn", "error", "fatal").
func Setup(w io.WriteCloser, level string) (*Handler, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	h := NewHandler(w)
	log.SetHandler(h)
	log.SetLevel(lvl)

	return h, nil
}

func ForPilot(pilotID int) *log.Entry {
	return log.WithField("pilot", pilotID)
}

func ForKey(keyID int) *log.Entry {
	return log.WithField("key", keyID)
}
