package literal

import (
	"errors"
	"reflect"
	"testing"

	"github.com/coregx/rpnregex/nfa"
)

func strs(s *Seq) []string {
	if s == nil {
		return nil
	}
	out := s.Strings()
	if out == nil {
		out = []string{}
	}
	return out
}

func TestExtractor_Extract(t *testing.T) {
	tests := []struct {
		pattern  string
		exact    []string
		prefixes []string
		factors  []string
	}{
		{"a", []string{"a"}, []string{"a"}, []string{"a"}},
		{"ab.", []string{"ab"}, []string{"ab"}, []string{"ab"}},
		{"ab.cd.|", []string{"ab", "cd"}, []string{"ab", "cd"}, []string{"ab", "cd"}},
		{"ab|c.", []string{"ac", "bc"}, []string{"ac", "bc"}, []string{"ac", "bc"}},
		{"abc|*.", nil, []string{"a"}, []string{"a"}},
		{"a*", nil, nil, nil},
		{"a*bc..", nil, nil, []string{"bc"}},
		{"ab.c*.de..", nil, []string{"ab"}, []string{"ab"}},
		{"xy.z*.", nil, []string{"xy"}, []string{"xy"}},
		{"a*b.", nil, nil, []string{"b"}},
		{"ab.c*|", nil, nil, nil},
		{"aab.|", []string{"a", "ab"}, []string{"a"}, []string{"a"}},
		{"é", []string{"é"}, []string{"é"}, []string{"é"}},
		{"\uFFFD", nil, nil, nil},
		{"a\uFFFD.", nil, []string{"a"}, []string{"a"}},
	}

	ex := New(DefaultConfig())
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			info, err := ex.Extract(tt.pattern)
			if err != nil {
				t.Fatalf("Extract(%q): %v", tt.pattern, err)
			}
			if got := strs(info.Exact); !reflect.DeepEqual(got, tt.exact) {
				t.Errorf("Exact = %v, want %v", got, tt.exact)
			}
			if got := strs(info.Prefixes); !reflect.DeepEqual(got, tt.prefixes) {
				t.Errorf("Prefixes = %v, want %v", got, tt.prefixes)
			}
			if got := strs(info.Factors); !reflect.DeepEqual(got, tt.factors) {
				t.Errorf("Factors = %v, want %v", got, tt.factors)
			}
			if info.Exact != nil {
				for i := 0; i < info.Exact.Len(); i++ {
					if !info.Exact.Get(i).Complete {
						t.Errorf("exact literal %v is not complete", info.Exact.Get(i))
					}
				}
			}
		})
	}
}

func TestExtractor_Limits(t *testing.T) {
	ex := New(ExtractorConfig{MaxLiterals: 4, MaxLiteralLen: 3})

	// (a|b)(c|d)(e|f) has 8 strings: over MaxLiterals.
	info, err := ex.Extract("ab|cd|.ef|.")
	if err != nil {
		t.Fatal(err)
	}
	if info.Exact != nil {
		t.Errorf("Exact should be unknown over the literal limit, got %v", info.Exact.Strings())
	}
	if got := strs(info.Prefixes); !reflect.DeepEqual(got, []string{"ac", "ad", "bc", "bd"}) {
		t.Errorf("Prefixes = %v", got)
	}

	// "abcd" is longer than MaxLiteralLen.
	info, err = ex.Extract("ab.c.d.")
	if err != nil {
		t.Fatal(err)
	}
	if info.Exact != nil {
		t.Errorf("Exact should be unknown over the length limit, got %v", info.Exact.Strings())
	}
	if got := strs(info.Prefixes); !reflect.DeepEqual(got, []string{"abc"}) {
		t.Errorf("Prefixes = %v, want [abc]", got)
	}
}

func TestExtractor_Malformed(t *testing.T) {
	ex := New(DefaultConfig())
	tests := []struct {
		pattern string
		want    error
	}{
		{"|", nfa.ErrMissingOperand},
		{"*", nfa.ErrMissingOperand},
		{"a.", nfa.ErrMissingOperand},
		{"ab", nfa.ErrUnbalancedExpression},
		{"", nfa.ErrUnbalancedExpression},
	}
	for _, tt := range tests {
		if _, err := ex.Extract(tt.pattern); !errors.Is(err, tt.want) {
			t.Errorf("Extract(%q) error = %v, want %v", tt.pattern, err, tt.want)
		}
	}
}

// Every text matched by the pattern must agree with the extracted literals.
func TestExtractor_SoundAgainstPikeVM(t *testing.T) {
	patterns := []string{
		"abc|*.", "ab.cd.|", "a*bc..", "ab|c.", "ab.c*.de..", "ab|*c.", "ab.c*|",
		"ab|cd|.ef|.", "aab.|", "ba*.c.",
	}
	texts := []string{
		"", "a", "b", "c", "ab", "ac", "bc", "cd", "abc", "abcde", "bcc", "abde",
		"ace", "bdf", "aab", "bac", "baac", "abcb", "ccc",
	}

	ex := New(ExtractorConfig{MaxLiterals: 4, MaxLiteralLen: 8})
	for _, pattern := range patterns {
		prog, err := nfa.Compile(pattern)
		if err != nil {
			t.Fatal(err)
		}
		vm := nfa.NewPikeVM(prog)
		info, err := ex.Extract(pattern)
		if err != nil {
			t.Fatal(err)
		}

		for _, text := range texts {
			matched := vm.IsMatchString(text)
			if info.Exact != nil {
				inSet := false
				for _, s := range info.Exact.Strings() {
					inSet = inSet || s == text
				}
				if inSet != matched {
					t.Errorf("%q on %q: exact set says %v, PikeVM says %v", pattern, text, inSet, matched)
				}
			}
			if !matched {
				continue
			}
			if info.Prefixes != nil && !anyOf(info.Prefixes, text, hasPrefix) {
				t.Errorf("%q matches %q but no prefix in %v", pattern, text, info.Prefixes.Strings())
			}
			if info.Factors != nil && !anyOf(info.Factors, text, contains) {
				t.Errorf("%q matches %q but no factor in %v", pattern, text, info.Factors.Strings())
			}
		}
	}
}

func hasPrefix(text, lit string) bool { return len(text) >= len(lit) && text[:len(lit)] == lit }

func contains(text, lit string) bool {
	for i := 0; i+len(lit) <= len(text); i++ {
		if text[i:i+len(lit)] == lit {
			return true
		}
	}
	return false
}

func anyOf(s *Seq, text string, pred func(text, lit string) bool) bool {
	for _, lit := range s.Strings() {
		if pred(text, lit) {
			return true
		}
	}
	return false
}
