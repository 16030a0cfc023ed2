package service

import (
	"roster/internal/database"
	"roster/internal/model"
)

// StudentService holds the roster in memory and writes the whole collection
// back through its repository after every mutation.
//
// Mutations always apply in memory. A returned error means only that the
// save failed; the next successful save brings storage back in line.
type StudentService struct {
	repo     database.Repository
	students []model.Student
}

func NewStudentService(repo database.Repository) *StudentService {
	return &StudentService{repo: repo, students: []model.Student{}}
}

// Load replaces the in-memory collection with what the repository returns.
// On error the recovered records, if any, are kept.
func (s *StudentService) Load() error {
	students, err := s.repo.Load()
	if students == nil {
		students = []model.Student{}
	}
	s.students = students
	return err
}

func (s *StudentService) Add(student model.Student) error {
	s.students = append(s.students, student)
	return s.persist()
}

// AddAll appends students in order and saves once.
func (s *StudentService) AddAll(students []model.Student) error {
	s.students = append(s.students, students...)
	return s.persist()
}

// Remove deletes every student with the given roll number and returns how many
// were removed. The collection is saved even when nothing matched.
func (s *StudentService) Remove(rollNumber int) (int, error) {
	kept := make([]model.Student, 0, len(s.students))
	for _, student := range s.students {
		if student.RollNumber != rollNumber {
			kept = append(kept, student)
		}
	}
	removed := len(s.students) - len(kept)
	s.students = kept

	return removed, s.persist()
}

// Find returns the first student with the given roll number.
func (s *StudentService) Find(rollNumber int) (model.Student, bool) {
	for _, student := range s.students {
		if student.RollNumber == rollNumber {
			return student, true
		}
	}
	return model.Student{}, false
}

// ListAll returns a copy of the collection in insertion order.
func (s *StudentService) ListAll() []model.Student {
	students := make([]model.Student, len(s.students))
	copy(students, s.students)
	return students
}

func (s *StudentService) Count() int {
	return len(s.students)
}

func (s *StudentService) persist() error {
	return s.repo.Save(s.ListAll())
}
