package uses

import (
	"errors"
	"fmt"
)

// ErrInvalidUse reports a use value outside the string | LoaderSpec | list
// contract.
var ErrInvalidUse = errors.New("uses: use value must be a string, a LoaderSpec, or a list of either")

// ErrNotBuiltin reports a builtin materialization attempted on a loader
// without the reserved prefix. This is an internal invariant violation, not a
// user configuration error.
var ErrNotBuiltin = errors.New(`uses: builtin step requires the "builtin:" loader prefix`)

// ResolveError identifies the loader whose path could not be resolved against
// the build context.
type ResolveError struct {
	Loader  string
	Context string
	Err     error
}

func (e *ResolveError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Context == "" {
		return fmt.Sprintf("uses: resolve loader %q: %v", e.Loader, e.Err)
	}
	return fmt.Sprintf("uses: resolve loader %q in %s: %v", e.Loader, e.Context, e.Err)
}

func (e *ResolveError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func wrapResolveError(loader, context string, err error) error {
	if err == nil {
		return nil
	}
	var resolveErr *ResolveError
	if errors.As(err, &resolveErr) {
		return err
	}
	return &ResolveError{Loader: loader, Context: context, Err: err}
}
