package whentext

import "fmt"

// ParseError reports text that matched a grammar rule but carried a field
// value the rule could not interpret (for example a calendar day above 31
// that cannot be reread as a year).
type ParseError struct {
	Rule string // grammar rule that rejected the value
	Text string // offending raw text
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("whentext: rule %s: cannot interpret %q", e.Rule, e.Text)
}

// AmbiguityError reports a bare integer inside a range or list with no
// neighbor context to borrow a type from ("7-17" on its own).
type AmbiguityError struct {
	Text string
}

func (e *AmbiguityError) Error() string {
	return fmt.Sprintf("whentext: cannot resolve ambiguous value %q without context", e.Text)
}

// RenderError reports a field that survived parsing but names an invalid
// calendar value, such as day 31 in a 30-day month. Values are never
// silently clamped.
type RenderError struct {
	Field string
	Value int
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("whentext: invalid %s %d", e.Field, e.Value)
}
