package sink

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// CardName is the file name of the dataset card.
const CardName = "README.md"

// DirSink writes parts as pretty-printed JSON files into Dir.
type DirSink struct {
	Dir string
}

func (d *DirSink) Name() string { return "dir:" + d.Dir }

func (d *DirSink) WriteChunk(ctx context.Context, part Part) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.Wrapf(err, "writing %s", part.Name())
	}
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return "", errors.Wrap(err, "creating output directory")
	}
	path := filepath.Join(d.Dir, part.Name())
	if err := WriteJSON(path, part.Records); err != nil {
		return "", err
	}
	return path, nil
}

func (d *DirSink) WriteCard(ctx context.Context, card Card) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.Wrap(err, "writing dataset card")
	}
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return "", errors.Wrap(err, "creating output directory")
	}
	path := filepath.Join(d.Dir, CardName)
	if err := os.WriteFile(path, []byte(RenderCard(card)), 0o644); err != nil {
		return "", errors.Wrapf(err, "writing %s", path)
	}
	return path, nil
}

// WriteJSON writes v to path as two-space indented JSON without HTML
// escaping. The data goes to a temporary file in the same directory that is
// renamed over path, so concurrent writers never interleave and readers see
// either the old or the new file.
func WriteJSON(path string, v interface{}) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	if err := newEncoder(tmp).Encode(v); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "encoding %s", path)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "closing %s", path)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}
