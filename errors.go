package qrel

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter is returned before any construction or sampling
	// when a system or configuration value is out of range.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrOracle wraps any failure of the sampling backend. It aborts the
	// whole evaluation.
	ErrOracle = errors.New("oracle execution failed")
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}

func oracleErr(index int, err error) error {
	return fmt.Errorf("%w: repetition %d: %w", ErrOracle, index, err)
}
