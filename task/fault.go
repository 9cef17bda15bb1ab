package task

import "fmt"

// FaultError reports a panic raised by a task body while it was being advanced
// The faulting task has already been disposed and unbound from its site
type FaultError struct {
	Phase Signal
	Value any
	Stack []byte
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("task fault during %s: %v", e.Phase, e.Value)
}

// Unwrap exposes the panic value when it was an error
func (e *FaultError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
