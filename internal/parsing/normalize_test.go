package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_BasicTokenization(t *testing.T) {
	nt, err := Normalize([]byte("5 years experience in Python and SQL."), "resume-1")
	require.NoError(t, err)

	assert.Equal(t, []string{"5", "years", "experience", "in", "python", "and", "sql"}, nt.Tokens)
	assert.Equal(t, 7, nt.TokenCount())
	assert.Equal(t, "resume-1", nt.SourceHint)
}

func TestNormalize_PreservesCompoundTokens(t *testing.T) {
	nt, err := Normalize([]byte("Worked with C++, C# and Node.js daily."), "resume-1")
	require.NoError(t, err)

	assert.Equal(t, []string{"worked", "with", "c++", "c#", "and", "node.js", "daily"}, nt.Tokens)
}

func TestNormalize_TrimsSentencePunctuation(t *testing.T) {
	nt, err := Normalize([]byte("SQL. Docker! Kubernetes? (Python)"), "resume-1")
	require.NoError(t, err)

	// Trailing periods are trimmed; other punctuation separates tokens.
	assert.Equal(t, []string{"sql", "docker", "kubernetes", "python"}, nt.Tokens)
}

func TestNormalize_CollapsesWhitespaceAndControlChars(t *testing.T) {
	nt, err := Normalize([]byte("python\t\tsql\r\n\x00\x07docker   go"), "resume-1")
	require.NoError(t, err)

	assert.Equal(t, []string{"python", "sql", "docker", "go"}, nt.Tokens)
}

func TestNormalize_EmptyInput(t *testing.T) {
	nt, err := Normalize(nil, "resume-1")
	require.NoError(t, err)

	assert.Empty(t, nt.Tokens)
	assert.Equal(t, 0, nt.TokenCount())
}

func TestNormalize_InvalidUTF8(t *testing.T) {
	_, err := Normalize([]byte{0xff, 0xfe, 0x41}, "resume-1")
	require.Error(t, err)

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "resume-1", decodeErr.SourceHint)
}

func TestNormalize_Deterministic(t *testing.T) {
	raw := []byte("Senior Go Engineer, 7 years. Kubernetes & Docker; node.js")

	first, err := Normalize(raw, "job-1")
	require.NoError(t, err)
	second, err := Normalize(raw, "job-1")
	require.NoError(t, err)

	assert.Equal(t, first.Tokens, second.Tokens)
	assert.Equal(t, first.Fingerprint(), second.Fingerprint())
}

func TestNormalizePhrase_MatchesTokenizer(t *testing.T) {
	// Aliases indexed through NormalizePhrase must resolve whatever the
	// tokenizer emits for the same surface form.
	assert.Equal(t, "node.js", NormalizePhrase("Node.js"))
	assert.Equal(t, "machine learning", NormalizePhrase("  Machine   Learning "))
	assert.Equal(t, "c++", NormalizePhrase("C++"))
}

func TestFingerprint_DiffersByContent(t *testing.T) {
	a, err := Normalize([]byte("python sql"), "r1")
	require.NoError(t, err)
	b, err := Normalize([]byte("python docker"), "r1")
	require.NoError(t, err)

	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

func TestFingerprint_IgnoresSourceHint(t *testing.T) {
	a, err := Normalize([]byte("python sql"), "upload-1")
	require.NoError(t, err)
	b, err := Normalize([]byte("python sql"), "upload-2")
	require.NoError(t, err)

	// Re-uploading identical content must hit the same cache entry.
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
}

func TestFingerprintWithSource_SeparatesSources(t *testing.T) {
	nt, err := Normalize([]byte("go developer wanted"), "job-1")
	require.NoError(t, err)

	assert.NotEqual(t, nt.FingerprintWithSource("adzuna"), nt.FingerprintWithSource("linkedin"))
}
