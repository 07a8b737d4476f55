package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	TelegramBot TelegramBot
	SportsAPI   SportsAPI
	DummyAPI    DummyAPI
	Storage     Storage
	Log         Log
	Server      Server
	Digest      Digest
}

type TelegramBot struct {
	Token          string        `envconfig:"TELEGRAM_TOKEN" required:"true"`
	ChatID         int64         `envconfig:"CHAT_ID"`
	SearchDebounce time.Duration `envconfig:"SEARCH_DEBOUNCE" default:"400ms"`
}

// SportsAPI points at TheSportsDB, e.g. https://www.thesportsdb.com/api/v1/json/3.
// An empty BaseURL degrades every lookup to an empty result.
type SportsAPI struct {
	BaseURL         string        `envconfig:"SPORTS_API"`
	DefaultLeagueID string        `envconfig:"DEFAULT_LEAGUE_ID" default:"4328"`
	Timeout         time.Duration `envconfig:"SPORTS_API_TIMEOUT" default:"10s"`
}

type DummyAPI struct {
	BaseURL string `envconfig:"DUMMY_API"`
}

type Storage struct {
	// Path of the bbolt file. Empty keeps everything in memory.
	Path string `envconfig:"STORAGE_PATH"`
}

type Log struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
	File  string `envconfig:"LOG_FILE"`
}

type Server struct {
	Addr string `envconfig:"HTTP_ADDR" default:":80"`
}

type Digest struct {
	Enabled bool   `envconfig:"DIGEST_ENABLED" default:"true"`
	At      string `envconfig:"DIGEST_AT" default:"08:00"`
	TZ      string `envconfig:"DIGEST_TZ" default:"Europe/London"`
}

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
