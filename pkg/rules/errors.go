package rules

import "errors"

var (
	// ErrEmptyRuleName is returned when registering a rule without a name.
	ErrEmptyRuleName = errors.New("rule name is empty")

	// ErrNilTest is returned when registering a rule without a test function.
	ErrNilTest = errors.New("rule test function is nil")
)
