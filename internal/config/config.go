package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/okubo/chobo/internal/ledger"
)

// Config carries every externally-settable knob. The current fiscal year and
// the single-posting counter account are explicit configuration handed to
// the core, never module-level state.
type Config struct {
	DBPath string
	Addr   string

	// CurrentNendo is the fiscal year new postings default to.
	CurrentNendo string

	// CounterAccount is the implicit counter-account for single postings.
	CounterAccount string
}

// Load reads an optional .env file, then the environment, falling back to
// defaults. The default nendo is the fiscal year containing today.
func Load() *Config {
	godotenv.Load()

	return &Config{
		DBPath:         getEnv("CHOBO_DB", "chobo.db"),
		Addr:           getEnv("CHOBO_ADDR", ":8787"),
		CurrentNendo:   getEnv("CHOBO_NENDO", ledger.NendoOf(time.Now())),
		CounterAccount: getEnv("CHOBO_COUNTER_ACCOUNT", "101"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
