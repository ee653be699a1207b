package meta

import (
	"github.com/coregx/rpnregex/literal"
	"github.com/coregx/rpnregex/nfa"
	"github.com/coregx/rpnregex/prefilter"
)

// Engine decides whole-text matches for one compiled postfix pattern.
//
// The Engine:
//  1. Compiles the pattern into an nfa.Program
//  2. Extracts literals and selects a strategy
//  3. Builds the exact set or prefilter the strategy needs
//  4. Answers IsMatch queries
//
// Thread safety: an Engine is immutable after compilation. PikeVM search
// state is taken from a sync.Pool, so IsMatch may be called from many
// goroutines at once.
type Engine struct {
	pattern  string
	prog     *nfa.Program
	pikevm   *nfa.PikeVM
	strategy Strategy

	exact     map[string]struct{}
	prefilter prefilter.Prefilter

	states *searchStatePool
}

// Compile compiles pattern with the default configuration.
func Compile(pattern string) (*Engine, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// CompileWithConfig compiles pattern with a custom configuration.
//
// Compile errors are *nfa.CompileError values; an invalid config yields a
// *ConfigError.
func CompileWithConfig(pattern string, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	compiler := nfa.NewCompiler(nfa.CompilerConfig{
		MaxProgramSize: config.MaxProgramSize,
		Logger:         config.Logger,
	})
	prog, err := compiler.Compile(pattern)
	if err != nil {
		return nil, err
	}

	return newEngine(pattern, prog, config), nil
}

func newEngine(pattern string, prog *nfa.Program, config Config) *Engine {
	vm := nfa.NewPikeVM(prog)
	e := &Engine{
		pattern: pattern,
		prog:    prog,
		pikevm:  vm,
		states:  newSearchStatePool(vm),
	}

	var info literal.Info
	if config.EnableExactSet || config.EnablePrefilter {
		extractor := literal.New(literal.ExtractorConfig{
			MaxLiterals:   config.MaxLiterals,
			MaxLiteralLen: config.MaxLiteralLen,
		})
		// The pattern already compiled, so extraction cannot fail.
		info, _ = extractor.Extract(pattern)
	}

	var pf prefilter.Prefilter
	if config.EnablePrefilter && !(config.EnableExactSet && info.Exact != nil) {
		pf = prefilter.Build(info, config.MinLiteralLen)
		if pf == nil {
			pf = prefilter.FromProgram(prog)
		}
	}

	e.strategy = SelectStrategy(info, pf != nil, config)
	switch e.strategy {
	case UseExactSet:
		e.exact = make(map[string]struct{}, info.Exact.Len())
		for _, s := range info.Exact.Strings() {
			e.exact[s] = struct{}{}
		}
	case UsePrefilter:
		e.prefilter = pf
	}

	event := config.Logger.Debug().
		Str("pattern", pattern).
		Stringer("strategy", e.strategy).
		Int("instructions", prog.Len())
	if e.prefilter != nil {
		event = event.Stringer("prefilter", e.prefilter)
	}
	if e.exact != nil {
		event = event.Int("exact_literals", len(e.exact))
	}
	event.Msg("selected strategy")

	return e
}

// IsMatch reports whether the whole of haystack matches the pattern.
func (e *Engine) IsMatch(haystack []byte) bool {
	switch e.strategy {
	case UseExactSet:
		_, ok := e.exact[string(haystack)]
		return ok
	case UsePrefilter:
		if !e.prefilter.MayMatch(haystack) {
			return false
		}
	}

	state := e.states.get()
	defer e.states.put(state)
	return e.pikevm.IsMatchWithState(state, haystack)
}

// IsMatchString is like IsMatch for a string.
func (e *Engine) IsMatchString(s string) bool {
	switch e.strategy {
	case UseExactSet:
		_, ok := e.exact[s]
		return ok
	case UsePrefilter:
		if !e.prefilter.MayMatch([]byte(s)) {
			return false
		}
	}

	state := e.states.get()
	defer e.states.put(state)
	return e.pikevm.IsMatchStringWithState(state, s)
}

// Strategy returns the execution strategy selected for this engine.
func (e *Engine) Strategy() Strategy {
	return e.strategy
}

// Program returns the compiled program.
func (e *Engine) Program() *nfa.Program {
	return e.prog
}

// Pattern returns the source pattern.
func (e *Engine) Pattern() string {
	return e.pattern
}

// Prefilter returns the prefilter in use, or nil.
func (e *Engine) Prefilter() prefilter.Prefilter {
	return e.prefilter
}
