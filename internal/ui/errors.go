package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// Failure kinds. Every error returned by a Driver is a *StepError that
// matches exactly one of these with errors.Is.
var (
	// ErrTimeout means a bounded wait elapsed before the element or condition appeared.
	ErrTimeout = errors.New("timeout")
	// ErrNotActionable means the element existed but could not receive the gesture.
	ErrNotActionable = errors.New("element not actionable")
	// ErrPatternMismatch means a structural value did not have the expected shape.
	ErrPatternMismatch = errors.New("pattern mismatch")
	// ErrAssertion means an expectation about the UI state did not hold.
	ErrAssertion = errors.New("assertion failed")
	// ErrDriver covers the remaining browser failures, such as a strict mode
	// violation or a closed page. The cause tells which.
	ErrDriver = errors.New("driver failure")
)

// StepError describes a failed page-object step: which step, which element,
// what was expected and what was last observed.
type StepError struct {
	Step     string
	Element  string
	Expected string
	Actual   string
	Kind     error
	Err      error
}

func (e *StepError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %q: %v", e.Step, e.Element, e.Kind)
	if e.Expected != "" || e.Actual != "" {
		fmt.Fprintf(&b, " (expected %s, actual %s)", e.Expected, e.Actual)
	}
	if e.Err != nil && e.Err != e.Kind {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Unwrap exposes both the kind and the underlying cause.
func (e *StepError) Unwrap() []error {
	if e.Err == nil || e.Err == e.Kind {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// call log fragments playwright emits while an element fails its actionability checks
var actionabilityHints = []string{
	"element is not visible",
	"element is not enabled",
	"element is not stable",
	"element is not editable",
	"element is outside of the viewport",
	"element is not attached",
	"intercepts pointer events",
}

// classify maps a driver error onto a failure kind. Failed polling
// assertions are reported as ErrAssertion.
func classify(err error, assertion bool) error {
	switch {
	case errors.Is(err, ErrPatternMismatch):
		return ErrPatternMismatch
	case errors.Is(err, ErrAssertion):
		return ErrAssertion
	case errors.Is(err, ErrNotActionable):
		return ErrNotActionable
	case assertion:
		return ErrAssertion
	}

	msg := err.Error()
	for _, hint := range actionabilityHints {
		if strings.Contains(msg, hint) {
			return ErrNotActionable
		}
	}
	if errors.Is(err, playwright.ErrTimeout) || errors.Is(err, ErrTimeout) {
		return ErrTimeout
	}
	return ErrDriver
}
