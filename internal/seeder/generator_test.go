package seeder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okian/gradebook/internal/domain/model"
)

func TestInstituteInputs(t *testing.T) {
	inputs := instituteInputs(10)
	require.Len(t, inputs, 10)

	codes := make(map[string]bool)
	for _, in := range inputs {
		assert.NotEmpty(t, in.Name)
		assert.False(t, codes[in.Code], "institute codes must be unique")
		codes[in.Code] = true
	}
}

func TestStudentInputs(t *testing.T) {
	institutes := []string{"i1", "i2", "i3"}
	inputs := studentInputs(30, institutes)
	require.Len(t, inputs, 30)

	perInstitute := make(map[string]int)
	emails := make(map[string]bool)
	for _, in := range inputs {
		assert.Contains(t, institutes, in.InstituteID)
		assert.False(t, emails[in.Email], "student emails must be unique")
		emails[in.Email] = true
		perInstitute[in.InstituteID]++
	}
	for _, id := range institutes {
		assert.Equal(t, 10, perInstitute[id], "students spread evenly across institutes")
	}
}

func TestCourseInputs(t *testing.T) {
	inputs := courseInputs(20)
	require.Len(t, inputs, 20)

	codes := make(map[string]bool)
	for _, in := range inputs {
		assert.False(t, codes[in.Code], "course codes must be unique")
		codes[in.Code] = true
		assert.GreaterOrEqual(t, in.Credits, 1)
		assert.LessOrEqual(t, in.Credits, 5)
	}
}

func TestResultInputs(t *testing.T) {
	cfg := &Config{Results: 100, YearFrom: 2022, YearTo: 2024}
	students := []string{"s1", "s2", "s3", "s4"}
	courses := []string{"c1", "c2", "c3"}

	inputs := resultInputs(cfg, students, courses)
	require.Len(t, inputs, 100)

	keys := make(map[model.RecordKey]bool)
	for _, in := range inputs {
		require.NotNil(t, in.Score)
		require.NotNil(t, in.AcademicYear)
		assert.GreaterOrEqual(t, *in.Score, 0.0)
		assert.LessOrEqual(t, *in.Score, 100.0)
		assert.GreaterOrEqual(t, *in.AcademicYear, 2022)
		assert.LessOrEqual(t, *in.AcademicYear, 2024)
		assert.True(t, in.Semester.Valid())

		key := in.Key()
		assert.False(t, keys[key], "composite keys must be distinct")
		keys[key] = true
	}
}

func TestResultInputs_CappedByGrid(t *testing.T) {
	// 1 student x 1 course x 1 year x 3 semesters = 3 possible keys.
	cfg := &Config{Results: 50, YearFrom: 2024, YearTo: 2024}
	inputs := resultInputs(cfg, []string{"s1"}, []string{"c1"})
	assert.Len(t, inputs, 3, "requests beyond the key grid are clamped")
}
