package domain

import "fmt"

// FailureKind classifies why an invocation did not succeed.
type FailureKind string

const (
	KindUnknownTool      FailureKind = "unknown_tool"
	KindInvalidArguments FailureKind = "invalid_arguments"
	KindProvider         FailureKind = "provider_error"
	KindHandler          FailureKind = "handler_error"
)

// Failure is the error side of a Result.
type Failure struct {
	Kind    FailureKind `json:"kind"`
	Message string      `json:"message"`
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// Result is the outcome of an invocation: either Text (success) or Failure.
type Result struct {
	Text    string   `json:"text,omitempty"`
	Failure *Failure `json:"failure,omitempty"`
}

// Success wraps a handler's text output.
func Success(text string) Result {
	return Result{Text: text}
}

// Fail builds a failed result.
func Fail(kind FailureKind, message string) Result {
	return Result{Failure: &Failure{Kind: kind, Message: message}}
}

// OK reports whether the result is a success.
func (r Result) OK() bool {
	return r.Failure == nil
}

// Outcome returns "success" or the failure kind, for logs and metrics labels.
func (r Result) Outcome() string {
	if r.Failure == nil {
		return "success"
	}
	return string(r.Failure.Kind)
}
