package model

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	ErrEmptyName   = errors.New("student name must not be empty")
	ErrEmptyGrade  = errors.New("student grade must not be empty")
	ErrInvalidText = errors.New("student name and grade must be valid UTF-8")
)

// Student is one roster entry. RollNumber identifies a student but is not
// required to be unique.
type Student struct {
	Name       string `json:"name" yaml:"name"`
	RollNumber int    `json:"roll_number" yaml:"roll_number"`
	Grade      string `json:"grade" yaml:"grade"`
}

func (s Student) String() string {
	return fmt.Sprintf("Student{name='%s', rollNumber=%d, grade='%s'}", s.Name, s.RollNumber, s.Grade)
}

// Validate checks the fields an operator must supply.
func (s Student) Validate() error {
	if !utf8.ValidString(s.Name) || !utf8.ValidString(s.Grade) {
		return ErrInvalidText
	}
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(s.Grade) == "" {
		return ErrEmptyGrade
	}
	return nil
}
