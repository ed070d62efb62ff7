// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

type (
	// ActionableError is a fatal grepr error that tells the user what was
	// attempted, on what, and what to try next.
	//
	//	err := issue.NewErrorContext().
	//		WithOperation("compile search pattern").
	//		WithResource(`foo(`).
	//		WithIssue(issue.InvalidPatternId).
	//		WithSuggestion("Quote the pattern so the shell passes it unchanged").
	//		Wrap(compileErr).
	//		BuildError()
	ActionableError struct {
		// Operation is a verb phrase such as "load configuration".
		Operation string
		// Resource is the config file, glob or pattern involved, if any.
		Resource    string
		Suggestions []string
		Cause       error
		// Issue selects the markdown hint rendered in verbose mode.
		Issue Id
	}

	// ErrorContext accumulates the fields of an ActionableError.
	ErrorContext struct {
		ae ActionableError
	}
)

// NewErrorContext starts an empty ErrorContext.
func NewErrorContext() *ErrorContext {
	return &ErrorContext{}
}

// WrapWithContext attaches an operation and resource to err. It returns nil
// for a nil err.
func WrapWithContext(err error, operation, resource string) *ActionableError {
	if err == nil {
		return nil
	}
	return &ActionableError{Operation: operation, Resource: resource, Cause: err}
}

// Error renders "failed to <operation>[: <resource>][: <cause>]".
func (e *ActionableError) Error() string {
	parts := []string{"failed to " + e.Operation}
	if e.Resource != "" {
		parts = append(parts, e.Resource)
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *ActionableError) Unwrap() error { return e.Cause }

// Format renders Error followed by one bullet per suggestion. In verbose
// mode every error below Cause is listed as well, numbered in depth-first
// order, including each branch of a multi-error.
func (e *ActionableError) Format(verbose bool) string {
	var b strings.Builder
	b.WriteString(e.Error())

	if len(e.Suggestions) > 0 {
		b.WriteString("\n")
		for _, s := range e.Suggestions {
			b.WriteString("\n  • " + s)
		}
	}

	if verbose && e.Cause != nil {
		b.WriteString("\n\nCaused by:")
		for i, msg := range causeChain(e.Cause) {
			fmt.Fprintf(&b, "\n  %d. %s", i+1, msg)
		}
	}
	return b.String()
}

// causeChain flattens err and everything it wraps.
func causeChain(err error) []string {
	var msgs []string
	stack := []error{err}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == nil {
			continue
		}
		msgs = append(msgs, cur.Error())

		switch u := cur.(type) {
		case interface{ Unwrap() []error }:
			children := slices.Clone(u.Unwrap())
			slices.Reverse(children)
			stack = append(stack, children...)
		default:
			stack = append(stack, errors.Unwrap(cur))
		}
	}
	return msgs
}

func (c *ErrorContext) WithOperation(op string) *ErrorContext {
	c.ae.Operation = op
	return c
}

func (c *ErrorContext) WithResource(res string) *ErrorContext {
	c.ae.Resource = res
	return c
}

// WithSuggestion appends a suggestion; suggestions print in call order.
func (c *ErrorContext) WithSuggestion(s string) *ErrorContext {
	c.ae.Suggestions = append(c.ae.Suggestions, s)
	return c
}

func (c *ErrorContext) WithIssue(id Id) *ErrorContext {
	c.ae.Issue = id
	return c
}

func (c *ErrorContext) Wrap(err error) *ErrorContext {
	c.ae.Cause = err
	return c
}

// Build returns a copy of the accumulated error, or nil when no operation
// was set.
func (c *ErrorContext) Build() *ActionableError {
	if c.ae.Operation == "" {
		return nil
	}
	ae := c.ae
	ae.Suggestions = slices.Clone(c.ae.Suggestions)
	return &ae
}

// BuildError is Build typed as error, so a missing operation yields an
// untyped nil.
func (c *ErrorContext) BuildError() error {
	if ae := c.Build(); ae != nil {
		return ae
	}
	return nil
}
