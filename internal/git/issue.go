package git

import (
	"errors"
	"fmt"
)

// ErrMalformedInput marks log content the parser had to drop or degrade.
var ErrMalformedInput = errors.New("malformed input")

// Issue records one malformed line. Issues never abort parsing.
type Issue struct {
	Line   int // 1-based line number in the input
	Text   string
	Reason string
}

// Err returns the issue as an error wrapping ErrMalformedInput
func (i Issue) Err() error {
	return fmt.Errorf("%w: line %d: %s: %q", ErrMalformedInput, i.Line, i.Reason, i.Text)
}

func (i Issue) String() string {
	return fmt.Sprintf("line %d: %s", i.Line, i.Reason)
}
