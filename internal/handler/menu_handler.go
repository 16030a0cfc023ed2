package handler

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"roster/internal/model"
	"roster/internal/service"
	"strconv"
	"strings"
)

const (
	choiceAdd = iota + 1
	choiceRemove
	choiceSearch
	choiceDisplay
	choiceExit
)

// MenuHandler runs the numbered console menu against a StudentService.
type MenuHandler struct {
	studentService *service.StudentService
	in             *bufio.Reader
	out            io.Writer
}

func NewMenuHandler(studentService *service.StudentService, in io.Reader, out io.Writer) *MenuHandler {
	return &MenuHandler{
		studentService: studentService,
		in:             bufio.NewReader(in),
		out:            out,
	}
}

// Run shows the menu until the operator exits or input ends.
func (h *MenuHandler) Run() error {
	for {
		h.displayMenu()
		choice, err := h.getIntInput("Enter your choice: ")
		if errors.Is(err, io.EOF) {
			choice = choiceExit
		} else if err != nil {
			return err
		}

		switch choice {
		case choiceAdd:
			err = h.addStudent()
		case choiceRemove:
			err = h.removeStudent()
		case choiceSearch:
			err = h.searchStudent()
		case choiceDisplay:
			h.displayAllStudents()
		case choiceExit:
			fmt.Fprintln(h.out, "Exiting Student Management System. Thank you!")
			return nil
		default:
			fmt.Fprintln(h.out, "Invalid choice. Please try again.")
		}

		if errors.Is(err, io.EOF) {
			fmt.Fprintln(h.out, "Exiting Student Management System. Thank you!")
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (h *MenuHandler) displayMenu() {
	fmt.Fprintln(h.out, "Student Management System:")
	fmt.Fprintln(h.out, "1. Add a Student")
	fmt.Fprintln(h.out, "2. Remove a Student")
	fmt.Fprintln(h.out, "3. Search for a Student")
	fmt.Fprintln(h.out, "4. Display All Students")
	fmt.Fprintln(h.out, "5. Exit")
}

func (h *MenuHandler) addStudent() error {
	fmt.Fprintln(h.out, "Adding a new student:")

	name, err := h.getNonEmptyInput("Enter student name: ")
	if err != nil {
		return err
	}
	rollNumber, err := h.getIntInput("Enter student roll number: ")
	if err != nil {
		return err
	}
	grade, err := h.getNonEmptyInput("Enter student grade: ")
	if err != nil {
		return err
	}

	student := model.Student{Name: name, RollNumber: rollNumber, Grade: grade}
	if err := student.Validate(); err != nil {
		fmt.Fprintf(h.out, "Student not added: %v\n", err)
		return nil
	}
	if err := h.studentService.Add(student); err != nil {
		h.reportSaveError(err)
	}
	fmt.Fprintln(h.out, "Student added successfully.")
	return nil
}

func (h *MenuHandler) removeStudent() error {
	fmt.Fprintln(h.out, "Removing a student:")

	rollNumber, err := h.getIntInput("Enter student roll number to remove: ")
	if err != nil {
		return err
	}

	student, found := h.studentService.Find(rollNumber)
	if !found {
		fmt.Fprintf(h.out, "Student with roll number %d not found.\n", rollNumber)
		return nil
	}

	if _, err := h.studentService.Remove(rollNumber); err != nil {
		h.reportSaveError(err)
	}
	fmt.Fprintf(h.out, "Student removed successfully: %s\n", student)
	return nil
}

func (h *MenuHandler) searchStudent() error {
	fmt.Fprintln(h.out, "Searching for a student:")

	rollNumber, err := h.getIntInput("Enter student roll number to search: ")
	if err != nil {
		return err
	}

	if student, found := h.studentService.Find(rollNumber); found {
		fmt.Fprintf(h.out, "Student found: %s\n", student)
	} else {
		fmt.Fprintf(h.out, "Student with roll number %d not found.\n", rollNumber)
	}
	return nil
}

func (h *MenuHandler) displayAllStudents() {
	students := h.studentService.ListAll()
	if len(students) == 0 {
		fmt.Fprintln(h.out, "No students found.")
		return
	}

	fmt.Fprintln(h.out, "All Students:")
	for _, student := range students {
		fmt.Fprintln(h.out, student)
	}
}

func (h *MenuHandler) reportSaveError(err error) {
	fmt.Fprintf(h.out, "Warning: changes could not be saved: %v\n", err)
}

func (h *MenuHandler) getNonEmptyInput(prompt string) (string, error) {
	for {
		fmt.Fprint(h.out, prompt)
		input, err := h.readLine()
		if input != "" {
			return input, nil
		}
		if err != nil {
			return "", err
		}
	}
}

func (h *MenuHandler) getIntInput(prompt string) (int, error) {
	for {
		fmt.Fprint(h.out, prompt)
		input, err := h.readLine()
		if input != "" {
			if n, convErr := strconv.Atoi(input); convErr == nil {
				return n, nil
			}
			fmt.Fprintln(h.out, "Invalid input. Please enter a valid integer.")
		}
		if err != nil {
			return 0, err
		}
	}
}

// readLine returns the next trimmed line. A final line without a newline is
// returned together with io.EOF.
func (h *MenuHandler) readLine() (string, error) {
	line, err := h.in.ReadString('\n')
	return strings.TrimSpace(line), err
}
