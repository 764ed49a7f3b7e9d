package codec

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Vocabulary is the fixed, ordered label set used for class-index encoding.
// Labels absent from the set fall back to Fallback, non-fatally.
type Vocabulary struct {
	Labels   []string `yaml:"labels"`
	Fallback int      `yaml:"fallback"`
}

// DefaultVocabulary is the compiled-in label set used when no vocabulary
// file is configured.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Labels:   []string{"object", "person", "vehicle", "animal", "text"},
		Fallback: 0,
	}
}

// LoadVocabulary reads a YAML vocabulary file. A missing file yields the
// default vocabulary without error; a malformed file returns the default
// alongside the error.
func LoadVocabulary(path string) (Vocabulary, error) {
	v := DefaultVocabulary()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return v, nil
		}
		return v, fmt.Errorf("read vocabulary: %w", err)
	}
	var loaded Vocabulary
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return v, fmt.Errorf("parse vocabulary: %w", err)
	}
	if len(loaded.Labels) == 0 {
		return v, nil
	}
	if loaded.Fallback < 0 || loaded.Fallback >= len(loaded.Labels) {
		loaded.Fallback = 0
	}
	return loaded, nil
}

// ClassIndex maps a label to its vocabulary index, falling back to the
// default index for unrecognized labels. ok reports a direct hit.
func (v Vocabulary) ClassIndex(label string) (int, bool) {
	for i, l := range v.Labels {
		if l == label {
			return i, true
		}
	}
	return v.Fallback, false
}

// ClassesFile renders the companion classes.txt listing every label in
// index order, one per line.
func (v Vocabulary) ClassesFile() []byte {
	return []byte(strings.Join(v.Labels, "\n") + "\n")
}
