package taxonomy

import (
	"embed"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Built-in taxonomy names.
const (
	StyleDescriptive = "descriptive"
	StyleBooking     = "booking"
)

//go:embed data/*.yaml
var builtinFS embed.FS

type document struct {
	Name     string  `yaml:"name"`
	Synonyms Mapping `yaml:"synonyms"`
	Problems Mapping `yaml:"problems"`
}

// Parse decodes and validates a YAML taxonomy document. path is only used in
// error messages.
func Parse(path string, data []byte) (*Taxonomy, error) {
	var generic interface{}
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return nil, errors.Wrapf(err, "parsing taxonomy %s", path)
	}
	if generic == nil {
		return nil, ErrEmpty
	}
	if err := validateShape(path, generic); err != nil {
		return nil, err
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, "decoding taxonomy %s", path)
	}
	return New(doc.Name, &doc.Synonyms, &doc.Problems)
}

// Load reads a taxonomy document from disk.
func Load(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading taxonomy")
	}
	return Parse(path, data)
}

// Builtin returns one of the taxonomies compiled into the binary.
func Builtin(style string) (*Taxonomy, error) {
	name := "data/" + style + ".yaml"
	data, err := builtinFS.ReadFile(name)
	if err != nil {
		return nil, errors.Errorf("unknown taxonomy style %q (available: %s)", style, strings.Join(Styles(), ", "))
	}
	t, err := Parse(name, data)
	if err != nil {
		return nil, err
	}
	if t.name == "" {
		t.name = style
	}
	return t, nil
}

// Styles lists the built-in taxonomy names, sorted.
func Styles() []string {
	entries, err := builtinFS.ReadDir("data")
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(out)
	return out
}

// Resolve loads the taxonomy at path when set, falling back to the built-in
// style otherwise.
func Resolve(style, path string) (*Taxonomy, error) {
	if path != "" {
		return Load(path)
	}
	return Builtin(style)
}
