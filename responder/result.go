package responder

import "github.com/poiesic/gitkb/core"

// Result is the outcome of answering one query. It is either an Answer or a
// Failure; callers that need the details type-switch on it.
type Result interface {
	// Success reports whether a response was produced from the query.
	Success() bool
	// Response is the text to show the end user.
	Response() string

	isResult()
}

// Answer is a successful result.
// Context is empty when the text came from a canned fallback.
type Answer struct {
	Text    string
	Context core.RetrievalResult
}

var _ Result = Answer{}

func (a Answer) Success() bool    { return true }
func (a Answer) Response() string { return a.Text }
func (a Answer) isResult()        {}

// Failure is a result whose computation faulted.
// The fault is for logs only; Response always returns ApologyMessage.
type Failure struct {
	Fault error
}

var _ Result = Failure{}

func (f Failure) Success() bool    { return false }
func (f Failure) Response() string { return ApologyMessage }
func (f Failure) isResult()        {}
