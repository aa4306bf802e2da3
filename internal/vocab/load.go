package vocab

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/schemas"
)

// DefaultVocabularyPath is where the bundled skill taxonomy lives, relative to
// the repository root.
const DefaultVocabularyPath = "configs/vocabulary.json"

// schemaPath is the JSON Schema the vocabulary file is validated against
// before decoding.
const schemaPath = "schemas/vocabulary.schema.json"

// Entry is one canonical skill definition as it appears in the vocabulary
// file.
type Entry struct {
	Name     string   `json:"name"`
	Category string   `json:"category,omitempty"`
	Aliases  []string `json:"aliases"`
}

type vocabularyFile struct {
	Skills []Entry `json:"skills"`
}

// Load reads a vocabulary JSON file, validates it against the vocabulary
// schema, and builds the immutable Vocabulary. Any defect fails with a
// VocabularyError; the caller is expected to abort startup.
func Load(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &VocabularyError{Path: path, Message: "cannot read vocabulary file", Cause: err}
	}

	if resolved := schemas.ResolvePath(schemaPath); resolved != "" {
		if err := schemas.ValidateBytes(resolved, data); err != nil {
			return nil, &VocabularyError{Path: path, Message: "vocabulary file does not match schema", Cause: err}
		}
	}

	var file vocabularyFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, &VocabularyError{Path: path, Message: "cannot parse vocabulary JSON", Cause: err}
	}

	v, err := Build(file.Skills)
	if err != nil {
		if ve, ok := err.(*VocabularyError); ok {
			ve.Path = path
		}
		return nil, err
	}
	return v, nil
}

// Build constructs a Vocabulary from entries, enforcing the load-time
// invariants: canonical names are unique, every canonical skill has at least
// one alias, and no alias maps to two different canonical skills. The
// canonical name itself is always indexed as an alias.
func Build(entries []Entry) (*Vocabulary, error) {
	v := &Vocabulary{
		byAlias: make(map[string]string),
		skills:  make(map[string]Skill, len(entries)),
	}

	for _, entry := range entries {
		name := entry.Name
		if parsing.NormalizePhrase(name) == "" {
			return nil, &VocabularyError{Message: "canonical skill name is empty after normalization"}
		}
		if _, exists := v.skills[name]; exists {
			return nil, &VocabularyError{Message: fmt.Sprintf("duplicate canonical skill %q", name)}
		}
		if len(entry.Aliases) == 0 {
			return nil, &VocabularyError{Message: fmt.Sprintf("canonical skill %q has no aliases; it must at least alias itself", name)}
		}
		v.skills[name] = Skill{Name: name, Category: entry.Category}

		for _, alias := range append([]string{name}, entry.Aliases...) {
			key := parsing.NormalizePhrase(alias)
			if key == "" {
				return nil, &VocabularyError{Message: fmt.Sprintf("alias %q of skill %q is empty after normalization", alias, name)}
			}
			if existing, taken := v.byAlias[key]; taken && existing != name {
				return nil, &VocabularyError{Message: fmt.Sprintf("alias %q maps to both %q and %q", alias, existing, name)}
			}
			v.byAlias[key] = name
		}
	}

	return v, nil
}
