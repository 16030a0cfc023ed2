package service_test

import (
	"os"
	"path/filepath"
	"roster/internal/database"
	"roster/internal/model"
	"roster/internal/service"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "students.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestImportCSV(t *testing.T) {
	csvPath := writeCSV(t, "name,roll_number,grade\n"+
		"Alice,101,A\n"+
		"Bob, 102 ,B\n"+
		"Carol,abc,C\n"+
		",104,D\n"+
		"Dave,105\n"+
		"Alice Again,101,C\n")

	repo := new(MockRepository)
	expected := []model.Student{
		alice,
		bob,
		{Name: "Alice Again", RollNumber: 101, Grade: "C"},
	}
	repo.On("Save", expected).Return(nil).Once()

	studentService := service.NewStudentService(repo)
	importService := service.NewImportService(studentService)

	result, err := importService.ImportCSV(csvPath)
	require.NoError(t, err)
	assert.Equal(t, "students.csv", result.FileName)
	assert.Equal(t, 6, result.TotalRecords)
	assert.Equal(t, 3, result.Imported)
	assert.Equal(t, 3, result.Skipped)
	assert.False(t, result.EndTime.Before(result.StartTime))

	assert.Equal(t, expected, studentService.ListAll())
	repo.AssertExpectations(t)
}

func TestImportCSVHeaderOnly(t *testing.T) {
	csvPath := writeCSV(t, "name,roll_number,grade\n")

	repo := new(MockRepository)
	importService := service.NewImportService(service.NewStudentService(repo))

	result, err := importService.ImportCSV(csvPath)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Imported)
	repo.AssertNotCalled(t, "Save", mock.Anything)
}

func TestImportCSVMissingFile(t *testing.T) {
	repo := new(MockRepository)
	studentService := service.NewStudentService(repo)
	importService := service.NewImportService(studentService)

	result, err := importService.ImportCSV(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, 0, studentService.Count())
}

func TestImportCSVMalformedLeavesStoreUnchanged(t *testing.T) {
	csvPath := writeCSV(t, "name,roll_number,grade\nAlice,101,A\n\"Bob,102,B\n")

	repo := new(MockRepository)
	studentService := service.NewStudentService(repo)
	importService := service.NewImportService(studentService)

	_, err := importService.ImportCSV(csvPath)
	assert.Error(t, err)
	assert.Equal(t, 0, studentService.Count())
	repo.AssertNotCalled(t, "Save", mock.Anything)
}

func TestExportThenImportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	source := service.NewStudentService(database.NewFileRepository(filepath.Join(dir, "source.jsonl")))
	require.NoError(t, source.AddAll([]model.Student{alice, bob, {Name: "O'Brien, Pat", RollNumber: 103, Grade: "B+"}}))

	csvPath := filepath.Join(dir, "export.csv")
	n, err := service.NewImportService(source).ExportCSV(csvPath)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	content, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "name,roll_number,grade\nAlice,101,A\n")

	target := service.NewStudentService(database.NewFileRepository(filepath.Join(dir, "target.jsonl")))
	result, err := service.NewImportService(target).ImportCSV(csvPath)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Imported)
	assert.Equal(t, source.ListAll(), target.ListAll())
}
