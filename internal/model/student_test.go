package model_test

import (
	"roster/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStudentString(t *testing.T) {
	s := model.Student{Name: "Alice", RollNumber: 101, Grade: "A"}
	assert.Equal(t, "Student{name='Alice', rollNumber=101, grade='A'}", s.String())
}

func TestStudentValidate(t *testing.T) {
	tests := []struct {
		name    string
		student model.Student
		wantErr error
	}{
		{"Valid", model.Student{Name: "Bob", RollNumber: 102, Grade: "B"}, nil},
		{"Empty name", model.Student{Name: "", RollNumber: 1, Grade: "B"}, model.ErrEmptyName},
		{"Blank name", model.Student{Name: "   ", RollNumber: 1, Grade: "B"}, model.ErrEmptyName},
		{"Empty grade", model.Student{Name: "Bob", RollNumber: 1, Grade: "\t"}, model.ErrEmptyGrade},
		{"Invalid UTF-8 name", model.Student{Name: "Jos\xe9", RollNumber: 1, Grade: "B"}, model.ErrInvalidText},
		{"Invalid UTF-8 grade", model.Student{Name: "José", RollNumber: 1, Grade: "\xff"}, model.ErrInvalidText},
		{"Negative roll number is allowed", model.Student{Name: "Bob", RollNumber: -7, Grade: "C"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.student.Validate(), tt.wantErr)
		})
	}
}
