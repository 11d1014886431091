package sink

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

// newEncoder returns the encoder every dataset artefact is written with.
func newEncoder(w io.Writer) *json.Encoder {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc
}

func marshalRecords(part Part) ([]byte, error) {
	var buf bytes.Buffer
	if err := newEncoder(&buf).Encode(part.Records); err != nil {
		return nil, errors.Wrapf(err, "encoding %s", part.Name())
	}
	return buf.Bytes(), nil
}
