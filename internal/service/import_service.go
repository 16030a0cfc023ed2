package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"roster/internal/model"
	"strconv"
	"strings"
	"time"
)

var csvHeader = []string{"name", "roll_number", "grade"}

type ImportResult struct {
	FileName     string
	TotalRecords int
	Imported     int
	Skipped      int
	StartTime    time.Time
	EndTime      time.Time
}

// ImportService moves roster data between the store and CSV files.
type ImportService struct {
	students *StudentService
}

func NewImportService(students *StudentService) *ImportService {
	return &ImportService{students: students}
}

// ImportCSV appends every valid row of the file to the store with a single
// save. Invalid rows are logged and skipped. The first row is treated as a
// header.
//
// When the rows were added but the save failed, the result is returned
// together with the save error.
func (s *ImportService) ImportCSV(filePath string) (*ImportResult, error) {
	result := &ImportResult{
		FileName:  filepath.Base(filePath),
		StartTime: time.Now(),
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	// Skip header row
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			result.EndTime = time.Now()
			return result, nil
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var students []model.Student
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		result.TotalRecords++

		student, err := parseRecord(record)
		if err != nil {
			line, _ := reader.FieldPos(0)
			log.Printf("Skipping %s line %d: %v\n", result.FileName, line, err)
			result.Skipped++
			continue
		}
		students = append(students, student)
	}

	result.Imported = len(students)
	if len(students) > 0 {
		err = s.students.AddAll(students)
	}
	result.EndTime = time.Now()

	log.Printf("Imported %d of %d records from %s in %v\n", result.Imported, result.TotalRecords, result.FileName, result.EndTime.Sub(result.StartTime))
	return result, err
}

func parseRecord(record []string) (model.Student, error) {
	if len(record) != len(csvHeader) {
		return model.Student{}, fmt.Errorf("expected %d fields, got %d", len(csvHeader), len(record))
	}

	rollNumber, err := strconv.Atoi(strings.TrimSpace(record[1]))
	if err != nil {
		return model.Student{}, fmt.Errorf("invalid roll number %q", record[1])
	}

	student := model.Student{
		Name:       strings.TrimSpace(record[0]),
		RollNumber: rollNumber,
		Grade:      strings.TrimSpace(record[2]),
	}
	if err := student.Validate(); err != nil {
		return model.Student{}, err
	}
	return student, nil
}

// ExportCSV writes the header and every student in insertion order, and
// returns the number of students written.
func (s *ImportService) ExportCSV(filePath string) (int, error) {
	file, err := os.Create(filePath)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	students := s.students.ListAll()
	writer := csv.NewWriter(file)
	if err := writer.Write(csvHeader); err != nil {
		return 0, err
	}
	for _, student := range students {
		row := []string{student.Name, strconv.Itoa(student.RollNumber), student.Grade}
		if err := writer.Write(row); err != nil {
			return 0, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return 0, err
	}
	return len(students), file.Close()
}
