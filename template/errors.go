package template

import "fmt"

// MissingVariableError names the first required placeholder that had
// no bound value. It is returned only when Options.FailOnMissing is
// set; the default policy substitutes a marker instead.
type MissingVariableError struct {
	Name string
}

func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("missing required variable %q", e.Name)
}
