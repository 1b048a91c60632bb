package meshdesc

import (
	"errors"
	"fmt"

	"github.com/hupe1980/meshdesc/persistence"
)

var (
	// ErrInvalidMagic is returned by Load when the stream is not a mesh description archive.
	ErrInvalidMagic = persistence.ErrInvalidMagic

	// ErrUnsupportedVersion is returned by Load for unknown format versions.
	ErrUnsupportedVersion = persistence.ErrUnsupportedVersion

	// ErrCorrupt is returned by Load when the archive is truncated or
	// references elements that do not exist.
	ErrCorrupt = persistence.ErrCorrupt
)

// ContractError reports a violated precondition of a topology operation,
// such as deleting a vertex that still has edges or creating a duplicate edge.
//
// Contract errors are programmer errors. They are raised as panics while
// assertions are enabled (see WithAssertions) and are never returned.
type ContractError struct {
	Op  string
	Msg string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("meshdesc: %s: %s", e.Op, e.Msg)
}

// IsContractError reports whether v (typically a recovered panic value)
// is a *ContractError.
func IsContractError(v any) bool {
	err, ok := v.(error)
	if !ok {
		return false
	}
	var ce *ContractError
	return errors.As(err, &ce)
}

// check panics with a ContractError when assertions are enabled and cond is false.
func (md *MeshDescription) check(cond bool, op, format string, args ...any) {
	if cond || !md.opts.assertions {
		return
	}
	panic(&ContractError{Op: op, Msg: fmt.Sprintf(format, args...)})
}
