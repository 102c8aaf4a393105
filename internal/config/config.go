// Package config supplies the CLI's ambient defaults. Settings come from
// an optional .octocrc.env file in the working directory (loaded with
// godotenv) and from the process environment; command-line flags override
// both.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Env var names recognised by the CLI.
const (
	EnvColor = "OCTOC_COLOR" // auto | always | never
	EnvOut   = "OCTOC_OUT"   // default output path for `octoc build`
)

// RCFile is looked up in the current working directory only.
const RCFile = ".octocrc.env"

// Config is the resolved ambient configuration.
type Config struct {
	Color string // auto | always | never
	Out   string // default -o for build; "" means next to the input
}

// Load reads RCFile if present (real environment variables win over file
// entries, per godotenv.Load semantics) and resolves the config.
func Load() Config {
	_ = godotenv.Load(RCFile) // absent file is not an error

	cfg := Config{Color: "auto"}
	if v := os.Getenv(EnvColor); v != "" {
		cfg.Color = v
	}
	if v := os.Getenv(EnvOut); v != "" {
		cfg.Out = v
	}
	return cfg
}

// ColorEnabled resolves the tri-state color setting against the terminal
// detection fatih/color already performed (its NoColor global).
func (c Config) ColorEnabled(terminalIsDumb bool) bool {
	switch c.Color {
	case "always":
		return true
	case "never":
		return false
	default:
		return !terminalIsDumb
	}
}
