package database

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"roster/internal/model"
)

// FileRepository keeps the collection in a single file. Every call opens and
// closes the file itself; nothing is held between calls.
type FileRepository struct {
	path  string
	codec Codec
}

func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path, codec: CodecFor(path)}
}

func (r *FileRepository) Path() string {
	return r.path
}

func (r *FileRepository) Load() ([]model.Student, error) {
	file, err := os.Open(r.path)
	if err != nil {
		// First run
		if errors.Is(err, fs.ErrNotExist) {
			return []model.Student{}, nil
		}
		return []model.Student{}, fmt.Errorf("%w: %s: %w", ErrReadFailure, r.path, err)
	}
	defer file.Close()

	students, err := r.codec.Decode(file)
	if err != nil {
		return students, fmt.Errorf("%w: %s: %w", ErrReadFailure, r.path, err)
	}
	return students, nil
}

// Save writes to a temporary file next to the target and renames it into
// place, so a failed write leaves the previous contents intact.
func (r *FileRepository) Save(students []model.Student) error {
	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(r.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteFailure, r.path, err)
	}
	tmpName := tmp.Name()

	if err := r.writeTo(tmp, students); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %w", ErrWriteFailure, r.path, err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %w", ErrWriteFailure, r.path, err)
	}
	return nil
}

func (r *FileRepository) writeTo(file *os.File, students []model.Student) error {
	if err := r.codec.Encode(file, students); err != nil {
		file.Close()
		return err
	}
	if err := file.Sync(); err != nil {
		file.Close()
		return err
	}
	if err := file.Chmod(0644); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func (r *FileRepository) Close() error {
	return nil
}
