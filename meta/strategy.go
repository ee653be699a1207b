package meta

import (
	"fmt"

	"github.com/coregx/rpnregex/literal"
)

// Strategy represents the execution strategy for deciding a match.
type Strategy int

const (
	// UseNFA runs the PikeVM on every text.
	// Selected when no literal information is available or both literal
	// paths are disabled.
	UseNFA Strategy = iota

	// UseExactSet decides by membership in the pattern's finite language.
	// Selected for patterns without repetition whose language fits
	// MaxLiterals, e.g. "ab.cd.|".
	UseExactSet

	// UsePrefilter rejects texts with a literal prefilter and runs the
	// PikeVM on the rest.
	// Selected when the pattern has required prefix or factor literals,
	// e.g. "ab.c*." must start with "ab".
	UsePrefilter
)

// String returns a human-readable representation of the strategy.
func (s Strategy) String() string {
	switch s {
	case UseNFA:
		return "UseNFA"
	case UseExactSet:
		return "UseExactSet"
	case UsePrefilter:
		return "UsePrefilter"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// SelectStrategy picks the strategy for the extracted literal info.
// hasPrefilter reports whether a prefilter could be built for info.
func SelectStrategy(info literal.Info, hasPrefilter bool, config Config) Strategy {
	if config.EnableExactSet && info.Exact != nil {
		return UseExactSet
	}
	if config.EnablePrefilter && hasPrefilter {
		return UsePrefilter
	}
	return UseNFA
}
