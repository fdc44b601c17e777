package semant

import (
	"fmt"
	"io"

	"cool-semant/types"
)

// Config is shared read-only by every component of one analysis.
type Config struct {
	Names types.Names
	// Trace receives progress lines when non-nil.
	Trace io.Writer
}

func DefaultConfig() *Config {
	return &Config{Names: types.DefaultNames()}
}

func (c *Config) tracef(format string, args ...interface{}) {
	if c.Trace == nil {
		return
	}
	fmt.Fprintf(c.Trace, format, args...)
}

// Option configures a SemanticAnalyzer.
type Option func(*Config)

func WithNames(names types.Names) Option {
	return func(c *Config) { c.Names = names }
}

func WithTrace(w io.Writer) Option {
	return func(c *Config) { c.Trace = w }
}
