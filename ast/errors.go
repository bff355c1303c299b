package ast

import "fmt"

// InvalidRequestError is returned when a constructor or builder call
// violates a data-model invariant, such as an empty variable name or
// DISTINCT and REDUCED set together.
type InvalidRequestError struct {
	// Op names the call that detected the violation (e.g. "NewVariable").
	Op string
	// Message describes the violated invariant.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

func (e *InvalidRequestError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *InvalidRequestError) Unwrap() error {
	return e.Cause
}

// CompileError is returned when a tree is structurally malformed for
// serialization, for example an arithmetic expression in a triple position.
type CompileError struct {
	// Node is the Go type of the offending node.
	Node string
	// Message describes why the node cannot be serialized.
	Message string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile %s: %s", e.Node, e.Message)
}

// NotSupportedError is returned for a feature, node type or Go value kind
// that has no compiler implementation.
type NotSupportedError struct {
	// Feature names what was requested.
	Feature string
}

func (e *NotSupportedError) Error() string {
	return fmt.Sprintf("not supported: %s", e.Feature)
}

func invalidRequest(op, format string, args ...any) error {
	return &InvalidRequestError{Op: op, Message: fmt.Sprintf(format, args...)}
}

func compileError(node any, format string, args ...any) error {
	return &CompileError{Node: fmt.Sprintf("%T", node), Message: fmt.Sprintf(format, args...)}
}
