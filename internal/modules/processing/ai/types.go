package ai

// Request is one prompt sent to the model.
type Request struct {
	System string
	Prompt string
	// JSONMode asks the provider for a JSON-only response when it supports one.
	JSONMode        bool
	MaxOutputTokens int
}

// Status classifies how an AI-backed stage finished.
type Status string

const (
	StatusOK       Status = "ok"
	StatusDisabled Status = "disabled"
	StatusNoJSON   Status = "no_json"
	StatusEmpty    Status = "empty"
	StatusFailed   Status = "failed"
)

// Outcome carries a stage's value and, when degraded, why.
// Degraded outcomes hold the zero value, which callers treat as "nothing useful".
type Outcome[T any] struct {
	Value  T
	Status Status
	Reason error
}

func Succeeded[T any](v T) Outcome[T] {
	return Outcome[T]{Value: v, Status: StatusOK}
}

func Degraded[T any](status Status, reason error) Outcome[T] {
	var zero T
	return Outcome[T]{Value: zero, Status: status, Reason: reason}
}

// Failed classifies err into a degraded outcome.
func Failed[T any](err error) Outcome[T] {
	return Degraded[T](StatusOf(err), err)
}

func (o Outcome[T]) OK() bool { return o.Status == StatusOK }
