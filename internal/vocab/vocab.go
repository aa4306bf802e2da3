// Package vocab provides the canonical skill taxonomy with alias resolution.
// The vocabulary is loaded once at process start, validated, and immutable
// afterwards; every other extraction component depends on it.
package vocab

import (
	"sort"

	"github.com/jonathan/resume-matcher/internal/parsing"
)

// Skill is a canonical skill with an optional category tag.
type Skill struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

// Vocabulary maps normalized aliases to canonical skills. Lookups are
// case-insensitive and punctuation-normalized through the parsing package, so
// "Node.js" and "nodejs" resolve identically when aliased that way.
type Vocabulary struct {
	byAlias map[string]string
	skills  map[string]Skill
}

// Resolve looks up a token (or a space-joined multi-token window) and returns
// the canonical skill it aliases, if any.
func (v *Vocabulary) Resolve(token string) (Skill, bool) {
	name, ok := v.byAlias[parsing.NormalizePhrase(token)]
	if !ok {
		return Skill{}, false
	}
	return v.skills[name], true
}

// CanonicalSkills returns all canonical skills, sorted by name.
func (v *Vocabulary) CanonicalSkills() []Skill {
	out := make([]Skill, 0, len(v.skills))
	for _, s := range v.skills {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns the number of canonical skills.
func (v *Vocabulary) Len() int {
	return len(v.skills)
}
