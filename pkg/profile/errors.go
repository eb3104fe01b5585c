package profile

import (
	"errors"
	"fmt"
)

// All profiling errors are deterministic data errors: fatal to the
// operation that produced them, never retried, and never repaired beyond
// the folding behavior the merge algebra already specifies.
var (
	// ErrInvariant reports an ambiguous node with duplicate-tag or nested
	// ambiguous alternatives, which only an externally constructed tree
	// can produce.
	ErrInvariant = errors.New("ambiguity invariant violated")

	// ErrMalformedDiscrete reports a discrete node whose frequency map is
	// missing or inconsistent.
	ErrMalformedDiscrete = errors.New("malformed discrete property")

	// ErrCannotClassify reports a raw value that matches no classification
	// rule. Well-formed JSON-like input never triggers it.
	ErrCannotClassify = errors.New("value cannot be classified")
)

func errInvariant(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvariant, fmt.Sprintf(format, args...))
}
