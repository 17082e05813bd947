package pbwt

import (
	"fmt"

	"github.com/grailbio/base/errors"
)

// Error kinds. All are fatal by design: a caller that receives one should
// abort the run rather than retry or skip. They are still returned as
// ordinary errors, not panics, so that cmd/pbwt-match (or a test) can
// decide how to report them.
var (
	// ErrConfig marks a configuration error: bad flags, mismatched panel
	// dimensions, a missing panel.
	ErrConfig = errors.New("pbwt: configuration error")
	// ErrStructural marks an internal invariant failure: cursor advanced
	// past N, an index out of bounds in a precomputed array.
	ErrStructural = errors.New("pbwt: structural error")
	// ErrInvariant marks a check-mode invariant violation: a reported match
	// was not actually a match, or was extensible on either side.
	ErrInvariant = errors.New("pbwt: invariant violation")
)

func configErrorf(format string, args ...interface{}) error {
	return errors.E(ErrConfig, fmt.Sprintf(format, args...))
}

func structuralErrorf(format string, args ...interface{}) error {
	return errors.E(ErrStructural, fmt.Sprintf(format, args...))
}

func invariantErrorf(format string, args ...interface{}) error {
	return errors.E(ErrInvariant, fmt.Sprintf(format, args...))
}
