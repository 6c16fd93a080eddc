package registry

import (
	"errors"
	"fmt"
)

// ErrTaskNotFound is returned when a task name has no implementation and the
// static probability fallback cannot apply.
var ErrTaskNotFound = errors.New("task not found")

// LookupError names the task that could not be resolved.
type LookupError struct {
	Name string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s: %q could not be associated with a registered handler or a task manifest, and no static probability was provided", ErrTaskNotFound.Error(), e.Name)
}

func (e *LookupError) Unwrap() error { return ErrTaskNotFound }
