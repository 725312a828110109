package parser

import (
	"strings"

	"mwfilter/internal/span"
)

// scriptRules are checked in order; the first keyword that matches decides
// the rule even if it then finds nothing to translate.
var scriptRules = span.FirstMatch{
	{Word: "choice", Body: span.TransitionCluster{}},
	{Word: "messagebox", Body: span.QuotedLiterals{Policy: span.AllLiterals()}},
	// say "sound" "text"
	{Word: "say", Body: span.QuotedLiterals{Policy: span.ExactlyNth(2, 1)}},
}

// ScriptFilter handles dialogue scripts. Only choice, messagebox and say
// statements carry translatable text.
type ScriptFilter struct {
	extensions
}

// NewScriptFilter creates a ScriptFilter for the given extensions (default .mwscript).
func NewScriptFilter(exts ...string) *ScriptFilter {
	return &ScriptFilter{extensions: newExtensions(exts, ".mwscript")}
}

func (f *ScriptFilter) Name() string { return "MWScript filter" }

func (f *ScriptFilter) Format() string { return "script" }

func (f *ScriptFilter) Spans(line string) []span.Span {
	return span.Find(line, scriptRules)
}

// Statement returns the lowercase keyword that selects the rule for line.
func (f *ScriptFilter) Statement(line string) (string, bool) {
	for _, k := range scriptRules {
		if _, ok := k.Match(line); ok {
			return strings.ToLower(k.Word), true
		}
	}
	return "", false
}
