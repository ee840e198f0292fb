package commit

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/commits.schema.json
var payloadSchema []byte

// ErrInvalidPayload is returned when a commit payload does not match the schema.
var ErrInvalidPayload = errors.New("invalid commit payload")

// Violation is a single schema violation.
type Violation struct {
	Field       string
	Description string
}

// ValidationError lists every violation found in a payload.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Description)
	}

	return fmt.Sprintf("%s: %s", ErrInvalidPayload, strings.Join(parts, "; "))
}

// Unwrap makes errors.Is(err, ErrInvalidPayload) hold.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidPayload
}

// Validate checks raw JSON against the embedded commit payload schema.
func Validate(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(payloadSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	if result.Valid() {
		return nil
	}

	verr := &ValidationError{}
	for _, re := range result.Errors() {
		verr.Violations = append(verr.Violations, Violation{
			Field:       re.Field(),
			Description: re.Description(),
		})
	}

	return verr
}
