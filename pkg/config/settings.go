package config

import (
	"fmt"
	"time"
)

const Version = "0.3.0"

// Settings is the typed view of the keys pilotd reads.
type Settings struct {
	APIBaseURL     string
	UserAgent      string
	APITimeout     time.Duration
	DBDriver       string
	DBDSN          string
	Port           int
	APIToken       string
	RefreshWorkers int
	LogLevel       string
	TxRetry        int
}

func LoadSettings(c Configer) Settings {
	s := Settings{
		APIBaseURL:     c.GetKeyWithDefault("EVE_API_BASE_URL", "https://api.eveonline.com"),
		UserAgent:      c.GetKeyWithDefault("EVE_API_USER_AGENT", fmt.Sprintf("pilotd %s", Version)),
		APITimeout:     time.Duration(c.GetIntKeyWithDefault("EVE_API_TIMEOUT_SECONDS", 30)) * time.Second,
		DBDriver:       c.GetKeyWithDefault("PILOTD_DB_DRIVER", "sqlite"),
		DBDSN:          c.GetKeyWithDefault("PILOTD_DB_DSN", "pilotd.db"),
		Port:           c.GetIntKeyWithDefault("PILOTD_PORT", 1357),
		APIToken:       c.GetKey("PILOTD_API_TOKEN"),
		RefreshWorkers: c.GetIntKeyWithDefault("PILOTD_REFRESH_WORKERS", 4),
		LogLevel:       c.GetKeyWithDefault("PILOTD_LOG_LEVEL", "info"),
		TxRetry:        c.GetIntKeyWithDefault("PILOTD_TX_RETRY", 3),
	}

	if s.RefreshWorkers < 1 {
		s.RefreshWorkers = 1
	}

	if s.TxRetry < 3 {
		s.TxRetry = 3
	}

	return s
}
