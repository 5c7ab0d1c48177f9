package render

import (
	"encoding/json"
	"io"
)

// JSON writes v as indented JSON followed by a newline. Times serialize as
// RFC 3339.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
