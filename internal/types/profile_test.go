package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestNewExtractedProfile_SortsSkills(t *testing.T) {
	p := NewExtractedProfile("resume-1", []string{"SQL", "Docker", "Python"}, nil, 42)

	assert.Equal(t, []string{"Docker", "Python", "SQL"}, p.Skills)
	assert.Equal(t, 42, p.RawTokenCount)
	assert.Nil(t, p.ExperienceYears)
}

func TestExtractedProfile_HasSkill(t *testing.T) {
	p := NewExtractedProfile("resume-1", []string{"Python", "SQL"}, nil, 10)

	assert.True(t, p.HasSkill("Python"))
	assert.True(t, p.HasSkill("SQL"))
	assert.False(t, p.HasSkill("Docker"))
}

func TestExtractedProfile_Empty(t *testing.T) {
	empty := NewExtractedProfile("resume-1", nil, nil, 0)
	assert.True(t, empty.Empty())

	nonEmpty := NewExtractedProfile("resume-2", []string{"Go"}, nil, 5)
	assert.False(t, nonEmpty.Empty())
}

func TestExtractedProfile_Seniority(t *testing.T) {
	tests := []struct {
		name  string
		years *int
		want  string
	}{
		{"no experience hint", nil, ""},
		{"zero years is junior, not absent", intPtr(0), SeniorityJunior},
		{"one year", intPtr(1), SeniorityJunior},
		{"two years", intPtr(2), SeniorityMid},
		{"five years", intPtr(5), SeniorityMid},
		{"six years", intPtr(6), SenioritySenior},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewExtractedProfile("r", nil, tt.years, 0)
			assert.Equal(t, tt.want, p.Seniority())
		})
	}
}

func TestJobPosting_Text(t *testing.T) {
	j := &JobPosting{Title: "Backend Developer", Description: "Go and SQL."}
	assert.Equal(t, "Backend Developer\nGo and SQL.", j.Text())

	untitled := &JobPosting{Description: "Go and SQL."}
	assert.Equal(t, "Go and SQL.", untitled.Text())
}
