package client

import "fmt"

// StatusError is returned for a non-2xx response whose body is not part of
// the API contract.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.Path, e.Code, e.Body)
}

// ContractError means the server answered with a body that failed schema
// validation.
type ContractError struct {
	Schema string
	Err    error
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("response violates %s contract: %v", e.Schema, e.Err)
}

func (e *ContractError) Unwrap() error { return e.Err }

// IncompatibleServerError means the server speaks a different major API
// version.
type IncompatibleServerError struct {
	Server string
	Client string
}

func (e *IncompatibleServerError) Error() string {
	return fmt.Sprintf("server API %s is incompatible with client API %s", e.Server, e.Client)
}
