package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/commitlens/pkg/dashboard"
)

// Geometry output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ErrUnknownFormat is returned for a geometry format other than json or yaml.
var ErrUnknownFormat = errors.New("unknown geometry format")

// WriteGeometry serializes the full dashboard, data and geometry, in format.
func WriteGeometry(w io.Writer, d dashboard.Dashboard, format string) error {
	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("encode geometry: %w", err)
		}

		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("encode geometry: %w", err)
		}

		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode geometry: %w", err)
		}

		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
