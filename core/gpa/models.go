package gpa

import (
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/studyflow/studyflow/core"
)

// MaxCredits is the most credits a single course can carry.
const MaxCredits = 6

var (
	// LetterGrades lists the accepted letter grades, best first.
	LetterGrades = []string{"A", "A-", "B+", "B", "B-", "C+", "C", "C-", "D+", "D", "F"}

	gradePoints = map[string]float64{
		"A":  4.0,
		"A-": 3.7,
		"B+": 3.3,
		"B":  3.0,
		"B-": 2.7,
		"C+": 2.3,
		"C":  2.0,
		"C-": 1.7,
		"D+": 1.3,
		"D":  1.0,
		"F":  0.0,
	}

	letterGradeTag  = "lettergrade"
	letterGradeText = "grade must be one of " + strings.Join(LetterGrades, ", ")
)

// GradePoints returns the grade points of a letter grade.
func GradePoints(letter string) (float64, bool) {
	p, ok := gradePoints[letter]
	return p, ok
}

// CleanGrade normalizes a letter grade input.
func CleanGrade(letter string) string {
	return strings.ToUpper(strings.ReplaceAll(letter, " ", ""))
}

// Course is a course followed by a user. An empty Grade means the course is in progress.
type Course struct {
	ID        string    `json:"id" db:"id" firestore:"id"`
	UserID    string    `json:"-" db:"user_id" firestore:"user_id"`
	Name      string    `json:"name" db:"name" firestore:"name"`
	Credits   float64   `json:"credits" db:"credits" firestore:"credits"`
	Grade     string    `json:"grade" db:"grade" firestore:"grade"`
	CreatedAt time.Time `json:"created_at" db:"created_at" firestore:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" firestore:"updated_at"` // UTC
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	Name    string  `json:"name" validate:"required,notblank,max=200"`
	Credits float64 `json:"credits" validate:"gte=0,lte=6"`
	Grade   string  `json:"grade" validate:"lettergrade"`
}

func (nc *NewCourse) Validate(validate *validator.Validate) error {
	nc.Name = core.CleanString(nc.Name)
	nc.Grade = CleanGrade(nc.Grade)
	return validate.Struct(nc)
}

// UpdateCourse defines what information may be provided to modify an existing Course.
// An empty Grade marks the course as in progress again.
type UpdateCourse struct {
	Name    *string  `json:"name" validate:"omitempty,notblank,max=200"`
	Credits *float64 `json:"credits" validate:"omitempty,gte=0,lte=6"`
	Grade   *string  `json:"grade" validate:"omitempty,lettergrade"`
}

func (uc *UpdateCourse) Validate(validate *validator.Validate) error {
	if uc.Name != nil {
		name := core.CleanString(*uc.Name)
		uc.Name = &name
	}
	if uc.Grade != nil {
		letter := CleanGrade(*uc.Grade)
		uc.Grade = &letter
	}
	return validate.Struct(uc)
}

func (uc UpdateCourse) apply(c *Course) {
	if uc.Name != nil {
		c.Name = *uc.Name
	}
	if uc.Credits != nil {
		c.Credits = *uc.Credits
	}
	if uc.Grade != nil {
		c.Grade = *uc.Grade
	}
}

// InitValidators registers the gpa validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(letterGradeTag, letterGradeValidation)
	core.RegisterCustomTranslation(validate, translator, letterGradeTag, letterGradeText)
}

// letterGradeValidation accepts known letter grades and the empty (in progress) grade.
func letterGradeValidation(fl validator.FieldLevel) bool {
	letter := fl.Field().String()
	if letter == "" {
		return true
	}
	_, ok := gradePoints[letter]
	return ok
}
