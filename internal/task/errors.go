package task

import (
	"errors"
	"fmt"
)

// ErrConfiguration marks a task that cannot be constructed from the arguments
// it was given.
var ErrConfiguration = errors.New("task configuration error")

// ConfigError reports the task and argument key that failed construction.
type ConfigError struct {
	Task   string
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: task %q, argument %q: %s", ErrConfiguration.Error(), e.Task, e.Key, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrConfiguration }
