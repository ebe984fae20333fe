package lang

import (
	"fmt"
	"regexp"
	"strings"
)

// Signature templates use {name}, {params}, {return_type} and {visibility}
// placeholders. Extractors supply the values with their own punctuation
// (a python return type arrives as "-> int"), so rendering is plain
// substitution plus whitespace cleanup.

var placeholderPattern = regexp.MustCompile(`\{([a-z_]+)\}`)

var knownPlaceholders = map[string]bool{
	"name":        true,
	"params":      true,
	"return_type": true,
	"visibility":  true,
}

// ValidateTemplate rejects templates referencing unknown placeholders.
func ValidateTemplate(tmpl string) error {
	for _, m := range placeholderPattern.FindAllStringSubmatch(tmpl, -1) {
		if !knownPlaceholders[m[1]] {
			return fmt.Errorf("unknown placeholder {%s}", m[1])
		}
	}
	return nil
}

// RenderTemplate substitutes placeholder values into a template. Missing
// values become empty strings and runs of whitespace collapse to single
// spaces, so a template tolerates any subset of values. Rendering never
// fails.
func RenderTemplate(tmpl string, values map[string]string) string {
	out := placeholderPattern.ReplaceAllStringFunc(tmpl, func(tok string) string {
		key := tok[1 : len(tok)-1]
		return values[key]
	})
	return strings.Join(strings.Fields(out), " ")
}
