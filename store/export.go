package store

import (
	"encoding/json"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ayoisaiah/focustodo/internal/models"
)

// Export formats accepted by Export.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Export writes snap to w in the given format.
func Export(w io.Writer, snap models.Snapshot, format string) error {
	switch strings.ToLower(format) {
	case "", FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(snap)
	case FormatYAML, "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		err := enc.Encode(snap)
		if err != nil {
			return err
		}

		return enc.Close()
	}

	return errUnknownFormat.Fmt(format)
}
