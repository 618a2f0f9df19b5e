package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Texter is implemented by payloads with a human-readable rendering.
type Texter interface {
	WriteText(w io.Writer) error
}

// Write writes v in the requested format: text (default), json or edn.
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		return WriteText(w, v)
	case "json":
		return WriteJSON(w, v, pretty)
	case "edn":
		return WriteEDN(w, v, pretty)
	default:
		return fmt.Errorf("unknown format: %s (want text, json or edn)", format)
	}
}

func WriteText(w io.Writer, v any) error {
	if t, ok := v.(Texter); ok {
		return t.WriteText(w)
	}
	_, err := fmt.Fprintln(w, v)
	return err
}

func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}
