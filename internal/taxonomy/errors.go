package taxonomy

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrEmpty is returned when a taxonomy declares no aspects at all.
var ErrEmpty = errors.New("taxonomy: no aspects defined")

// IntegrityError reports a malformed aspect entry, such as a key present in
// the synonym mapping but missing from the problem mapping.
type IntegrityError struct {
	Key    string
	Reason string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("taxonomy: aspect %q %s", e.Key, e.Reason)
}

// SchemaError reports a taxonomy document whose shape does not match the
// taxonomy schema.
type SchemaError struct {
	Path string
	Err  error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("taxonomy: %s does not match schema: %v", e.Path, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// IsInvalid reports whether err is one of the taxonomy validation errors.
func IsInvalid(err error) bool {
	if errors.Is(err, ErrEmpty) {
		return true
	}
	var ie *IntegrityError
	if errors.As(err, &ie) {
		return true
	}
	var se *SchemaError
	return errors.As(err, &se)
}
