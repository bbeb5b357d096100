package storage

import (
	"encoding/json"
	"io"
)

// WriteJSON writes run metadata as indented JSON.
func WriteJSON(w io.Writer, meta *RunMetadata) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(meta)
}
