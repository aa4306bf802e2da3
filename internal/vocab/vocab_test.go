package vocab

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntries() []Entry {
	return []Entry{
		{Name: "JavaScript", Category: "language", Aliases: []string{"javascript", "js"}},
		{Name: "Node.js", Category: "framework", Aliases: []string{"node.js", "nodejs", "node"}},
		{Name: "Machine Learning", Category: "field", Aliases: []string{"machine learning", "ml"}},
		{Name: "Python", Category: "language", Aliases: []string{"python", "py"}},
	}
}

func TestBuild_ResolvesAliases(t *testing.T) {
	v, err := Build(testEntries())
	require.NoError(t, err)

	js, ok := v.Resolve("js")
	require.True(t, ok)
	assert.Equal(t, "JavaScript", js.Name)

	full, ok := v.Resolve("JavaScript")
	require.True(t, ok)
	assert.Equal(t, js, full, "alias and canonical name resolve to the same skill")
}

func TestBuild_ResolveIsCaseAndPunctuationInsensitive(t *testing.T) {
	v, err := Build(testEntries())
	require.NoError(t, err)

	dotted, ok := v.Resolve("Node.js")
	require.True(t, ok)
	plain, ok := v.Resolve("NODEJS")
	require.True(t, ok)
	assert.Equal(t, dotted, plain)
}

func TestBuild_ResolvesMultiWordAliases(t *testing.T) {
	v, err := Build(testEntries())
	require.NoError(t, err)

	ml, ok := v.Resolve("machine learning")
	require.True(t, ok)
	assert.Equal(t, "Machine Learning", ml.Name)

	_, ok = v.Resolve("machine")
	assert.False(t, ok, "partial phrase must not resolve")
}

func TestBuild_UnknownTokenDoesNotResolve(t *testing.T) {
	v, err := Build(testEntries())
	require.NoError(t, err)

	_, ok := v.Resolve("docker")
	assert.False(t, ok)
}

func TestBuild_AliasCollisionFails(t *testing.T) {
	_, err := Build([]Entry{
		{Name: "Go", Aliases: []string{"go", "golang"}},
		{Name: "Golang", Aliases: []string{"golang"}},
	})
	require.Error(t, err)

	var ve *VocabularyError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Message, "golang")
}

func TestBuild_ZeroAliasesFails(t *testing.T) {
	_, err := Build([]Entry{{Name: "Python"}})
	require.Error(t, err)

	var ve *VocabularyError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Message, "no aliases")
}

func TestBuild_DuplicateCanonicalNameFails(t *testing.T) {
	_, err := Build([]Entry{
		{Name: "SQL", Aliases: []string{"sql"}},
		{Name: "SQL", Aliases: []string{"structured query language"}},
	})
	require.Error(t, err)
}

func TestCanonicalSkills_Sorted(t *testing.T) {
	v, err := Build(testEntries())
	require.NoError(t, err)

	skills := v.CanonicalSkills()
	require.Len(t, skills, 4)
	assert.Equal(t, "JavaScript", skills[0].Name)
	assert.Equal(t, "Machine Learning", skills[1].Name)
	assert.Equal(t, "Node.js", skills[2].Name)
	assert.Equal(t, "Python", skills[3].Name)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vocabulary.json")
	content := `{"skills": [
		{"name": "Python", "category": "language", "aliases": ["python", "py"]},
		{"name": "SQL", "category": "language", "aliases": ["sql"]}
	]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	v, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, v.Len())

	py, ok := v.Resolve("py")
	require.True(t, ok)
	assert.Equal(t, "Python", py.Name)
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	var ve *VocabularyError
	assert.ErrorAs(t, err, &ve)
}

func TestLoad_MalformedJSONFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vocabulary.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Load(path)
	require.Error(t, err)

	var ve *VocabularyError
	assert.ErrorAs(t, err, &ve)
}
