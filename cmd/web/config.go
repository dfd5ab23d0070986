package main

import "time"

type config struct {
	// Addr is the address the public web server listens on.
	Addr      string `env:"BIOSECURE_ADDR" envDefault:"localhost:4000"`
	SqliteURL string `env:"BIOSECURE_SQLITE_URL" envDefault:"./biosecure.sqlite"`
	// PprofAddr serves pprof and Prometheus metrics. It must be a loopback address, empty disables it.
	PprofAddr string `env:"BIOSECURE_PPROF_ADDR" envDefault:"localhost:6060"`
	// CatalogPath points to a YAML questionnaire replacing the built-in farm catalog.
	CatalogPath     string        `env:"BIOSECURE_CATALOG_PATH" envDefault:""`
	SessionLifetime time.Duration `env:"BIOSECURE_SESSION_LIFETIME" envDefault:"12h"`
	// ChatRate is the number of chat messages per second a client may send.
	ChatRate      int  `env:"BIOSECURE_CHAT_RATE" envDefault:"2"`
	SecureCookies bool `env:"BIOSECURE_SECURE_COOKIES" envDefault:"true"`
}
