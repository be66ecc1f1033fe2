package gpa

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyflow/studyflow/core"
)

func TestCalculate(t *testing.T) {
	course := func(credits float64, grade string) Course {
		return Course{Credits: credits, Grade: grade}
	}

	tests := []struct {
		name    string
		courses []Course
		want    float64
	}{
		{name: "no courses", want: 0},
		{name: "only in progress", courses: []Course{course(3, ""), course(4, "")}, want: 0},
		{name: "only zero credits", courses: []Course{course(0, "A")}, want: 0},
		{name: "single", courses: []Course{course(3, "B+")}, want: 3.3},
		{name: "credit weighted", courses: []Course{course(3, "A"), course(4, "B")}, want: 3.43},
		{name: "skips in progress", courses: []Course{course(3, "A"), course(4, ""), course(2, "F")}, want: 2.4},
		{name: "all grades", courses: []Course{
			course(1, "A"), course(1, "A-"), course(1, "B+"), course(1, "B"), course(1, "B-"), course(1, "C+"),
			course(1, "C"), course(1, "C-"), course(1, "D+"), course(1, "D"), course(1, "F"),
		}, want: 2.27},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Calculate(tt.courses))
		})
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]Course{{Credits: 3, Grade: "A"}, {Credits: 4, Grade: "B"}, {Credits: 2}})
	assert.Equal(t, 3.43, s.GPA)
	assert.Equal(t, 7.0, s.Credits)
	assert.Equal(t, 3, s.CourseCount)
	assert.Equal(t, 2, s.GradedCount)

	empty := Summarize(nil)
	assert.Equal(t, 0.0, empty.GPA)
	assert.NotNil(t, empty.Courses)
}

func TestNewCourse_Validate(t *testing.T) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	InitValidators(validate, translator)

	tests := []struct {
		name      string
		nc        NewCourse
		wantGrade string
		wantErrs  map[string]string
	}{
		{name: "valid", nc: NewCourse{Name: " Calculus ", Credits: 4, Grade: " a- "}, wantGrade: "A-"},
		{name: "in progress", nc: NewCourse{Name: "Physics", Credits: 3}},
		{name: "blank name", nc: NewCourse{Name: "   ", Credits: 3}, wantErrs: map[string]string{"name": "this field is required"}},
		{name: "too many credits", nc: NewCourse{Name: "Lab", Credits: 7}, wantErrs: map[string]string{"credits": ""}},
		{name: "unknown grade", nc: NewCourse{Name: "Art", Credits: 2, Grade: "E"}, wantErrs: map[string]string{"grade": letterGradeText}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.nc.Validate(validate)
			if tt.wantErrs == nil {
				require.NoError(t, err)
				assert.Equal(t, tt.wantGrade, tt.nc.Grade)
				return
			}
			vErrs, ok := err.(validator.ValidationErrors)
			require.True(t, ok, "want validator.ValidationErrors, got %v", err)
			got := core.TranslateErrors(vErrs, translator)
			require.Len(t, got, len(tt.wantErrs))
			for fld, msg := range tt.wantErrs {
				require.Contains(t, got, fld)
				if msg != "" {
					assert.Equal(t, msg, got[fld])
				}
			}
		})
	}
}

func TestUpdateCourse_Validate(t *testing.T) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	InitValidators(validate, translator)

	empty := ""
	uc := UpdateCourse{Grade: &empty}
	require.NoError(t, uc.Validate(validate), "clearing the grade is allowed")

	bad := "z"
	uc = UpdateCourse{Grade: &bad}
	assert.Error(t, uc.Validate(validate))

	c := Course{Name: "Bio", Credits: 3, Grade: "B"}
	UpdateCourse{Grade: &empty}.apply(&c)
	assert.Equal(t, "", c.Grade)
	assert.Equal(t, 3.0, c.Credits)
}
