// Package meta implements the engine orchestrator that picks the cheapest
// correct way to decide a match for a compiled postfix pattern.
//
// The engine coordinates three paths:
//   - Exact set: finite languages are decided by hash-set membership
//   - Prefilter: literal checks reject texts that cannot match
//   - NFA (PikeVM): decides everything else, and confirms prefilter survivors
//
// Every path gives the same answer as the PikeVM alone; the strategy only
// changes how much work is done to reach it.
package meta

import (
	"github.com/rs/zerolog"
)

// Config controls engine behavior.
//
// Example:
//
//	config := meta.DefaultConfig()
//	config.EnablePrefilter = false // Force PikeVM for non-finite patterns
//	engine, err := meta.CompileWithConfig("abc|*.", config)
type Config struct {
	// EnableExactSet decides finite-language patterns by set membership.
	// Default: true
	EnableExactSet bool

	// EnablePrefilter enables literal-based rejection before the PikeVM.
	// Default: true
	EnablePrefilter bool

	// MaxLiterals limits the number of literals extracted per set.
	// Default: 64
	MaxLiterals int

	// MaxLiteralLen limits the byte length of each extracted literal.
	// Default: 64
	MaxLiteralLen int

	// MinLiteralLen is the minimum length of factor literals worth an
	// Aho-Corasick scan. Prefix checks are always used.
	// Default: 2
	MinLiteralLen int

	// MaxProgramSize limits the number of instructions in the compiled
	// program.
	// Default: 1 << 20
	MaxProgramSize int

	// Logger receives debug events about compilation and strategy choice.
	// Default: zerolog.Nop()
	Logger zerolog.Logger
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		EnableExactSet:  true,
		EnablePrefilter: true,
		MaxLiterals:     64,
		MaxLiteralLen:   64,
		MinLiteralLen:   2,
		MaxProgramSize:  1 << 20,
		Logger:          zerolog.Nop(),
	}
}

// Validate checks if the configuration is valid.
// Returns an error if any parameter is out of range.
//
// Valid ranges:
//   - MaxLiterals: 1 to 10,000 (when literals are used)
//   - MaxLiteralLen: 1 to 4,096 (when literals are used)
//   - MinLiteralLen: 1 to MaxLiteralLen (when the prefilter is enabled)
//   - MaxProgramSize: 2 to 1<<30
func (c Config) Validate() error {
	if c.EnableExactSet || c.EnablePrefilter {
		if c.MaxLiterals < 1 || c.MaxLiterals > 10_000 {
			return &ConfigError{
				Field:   "MaxLiterals",
				Message: "must be between 1 and 10,000",
			}
		}
		if c.MaxLiteralLen < 1 || c.MaxLiteralLen > 4_096 {
			return &ConfigError{
				Field:   "MaxLiteralLen",
				Message: "must be between 1 and 4,096",
			}
		}
	}

	if c.EnablePrefilter {
		if c.MinLiteralLen < 1 || c.MinLiteralLen > c.MaxLiteralLen {
			return &ConfigError{
				Field:   "MinLiteralLen",
				Message: "must be between 1 and MaxLiteralLen",
			}
		}
	}

	if c.MaxProgramSize < 2 || c.MaxProgramSize > 1<<30 {
		return &ConfigError{
			Field:   "MaxProgramSize",
			Message: "must be between 2 and 1<<30",
		}
	}

	return nil
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "rpnregex: invalid config: " + e.Field + ": " + e.Message
}
