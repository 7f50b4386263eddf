package seeder

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/okian/gradebook/internal/domain/model"
)

// Name pools for generated entities.
var (
	firstNames = []string{
		"Ava", "Ben", "Clara", "Dmitri", "Elena", "Farid", "Grace", "Hugo",
		"Iris", "Jonas", "Kira", "Liam", "Mina", "Noah", "Olga", "Pedro",
		"Quinn", "Rosa", "Sam", "Tara", "Umar", "Vera", "Wes", "Yara", "Zane",
	}
	lastNames = []string{
		"Adams", "Becker", "Chen", "Diaz", "Eriksen", "Fischer", "Garcia",
		"Hansen", "Ivanov", "Jensen", "Kim", "Larsen", "Meyer", "Nguyen",
		"Olsen", "Petrov", "Quist", "Rossi", "Silva", "Tanaka", "Weber",
	}
	instituteNames = []string{
		"Northfield Institute", "Lakeside College", "Harbor University",
		"Summit Academy", "Riverside Polytechnic", "Westgate Institute",
		"Crestwood College", "Meadowbrook University",
	}
	courseNames = []string{
		"Algorithms", "Linear Algebra", "Databases", "Operating Systems",
		"Statistics", "Microeconomics", "Organic Chemistry", "Thermodynamics",
		"World History", "Linguistics", "Machine Learning", "Genetics",
	}
	semesters = []model.Semester{
		model.SemesterSpring, model.SemesterSummer, model.SemesterFall,
	}
)

// randInt returns a random int in [0, n) using crypto/rand.
func randInt(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// randScore returns a score in [0, 100] with two decimal places, skewed
// toward the middle of the range so leaderboards look plausible.
func randScore() float64 {
	base := float64(randInt(7001))/100 + 30 // 30.00 .. 100.00
	if randInt(10) == 0 {
		base = float64(randInt(3000)) / 100 // occasional low outlier
	}
	return base
}

// instituteInputs builds n institute payloads with unique codes.
func instituteInputs(n int) []model.InstituteInput {
	out := make([]model.InstituteInput, n)
	for i := range out {
		out[i] = model.InstituteInput{
			Name:    fmt.Sprintf("%s %d", instituteNames[i%len(instituteNames)], i/len(instituteNames)+1),
			Code:    fmt.Sprintf("INST%03d", i+1),
			Address: fmt.Sprintf("%d Campus Drive", 100+i),
			Status:  model.StatusActive,
		}
	}
	return out
}

// studentInputs builds n student payloads spread across instituteIDs.
func studentInputs(n int, instituteIDs []string) []model.StudentInput {
	out := make([]model.StudentInput, n)
	for i := range out {
		first := firstNames[randInt(len(firstNames))]
		last := lastNames[randInt(len(lastNames))]
		out[i] = model.StudentInput{
			InstituteID: instituteIDs[i%len(instituteIDs)],
			FirstName:   first,
			LastName:    last,
			Email:       fmt.Sprintf("%s.%s.%d@students.example.com", first, last, i+1),
			Status:      model.StatusActive,
		}
	}
	return out
}

// courseInputs builds n course payloads with unique codes.
func courseInputs(n int) []model.CourseInput {
	out := make([]model.CourseInput, n)
	for i := range out {
		out[i] = model.CourseInput{
			Name:    fmt.Sprintf("%s %d", courseNames[i%len(courseNames)], i/len(courseNames)+101),
			Code:    fmt.Sprintf("C%03d", i+1),
			Credits: 1 + randInt(5),
		}
	}
	return out
}

// resultInputs builds n score submissions with distinct composite keys.
// Keys are sampled from the (student, course, year, semester) grid without
// replacement so a clean run produces no duplicate rejections.
func resultInputs(cfg *Config, studentIDs, courseIDs []string) []model.ScoreRecordInput {
	years := cfg.YearTo - cfg.YearFrom + 1
	grid := len(studentIDs) * len(courseIDs) * years * len(semesters)
	n := cfg.Results
	if n > grid {
		n = grid
	}

	seen := make(map[model.RecordKey]struct{}, n)
	out := make([]model.ScoreRecordInput, 0, n)
	for len(out) < n {
		score := randScore()
		year := cfg.YearFrom + randInt(years)
		in := model.ScoreRecordInput{
			StudentID:    studentIDs[randInt(len(studentIDs))],
			CourseID:     courseIDs[randInt(len(courseIDs))],
			Score:        &score,
			AcademicYear: &year,
			Semester:     semesters[randInt(len(semesters))],
		}
		key := in.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, in)
	}
	return out
}
