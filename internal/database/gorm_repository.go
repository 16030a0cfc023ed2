package database

import (
	"fmt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"roster/internal/model"
)

const insertBatchSize = 500

// studentRow is the table layout. Position is the 1-based insertion index,
// which keeps the collection order and lets several rows share a roll number.
type studentRow struct {
	Position   int `gorm:"primaryKey;autoIncrement:false"`
	Name       string
	RollNumber int
	Grade      string
}

func (studentRow) TableName() string {
	return "students"
}

// GormRepository stores the collection in a SQL table through gorm.
type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(dialector gorm.Dialector) (*GormRepository, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	// Auto-migrate the students table
	if err := db.AutoMigrate(&studentRow{}); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate the database: %w", err)
	}

	return &GormRepository{db: db}, nil
}

func (r *GormRepository) Load() ([]model.Student, error) {
	var rows []studentRow
	if err := r.db.Order("position").Find(&rows).Error; err != nil {
		return []model.Student{}, fmt.Errorf("%w: %w", ErrReadFailure, err)
	}

	students := make([]model.Student, 0, len(rows))
	for _, row := range rows {
		students = append(students, model.Student{
			Name:       row.Name,
			RollNumber: row.RollNumber,
			Grade:      row.Grade,
		})
	}
	return students, nil
}

// Save replaces every row in one transaction.
func (r *GormRepository) Save(students []model.Student) error {
	rows := make([]studentRow, 0, len(students))
	for i, s := range students {
		rows = append(rows, studentRow{
			Position:   i + 1,
			Name:       s.Name,
			RollNumber: s.RollNumber,
			Grade:      s.Grade,
		})
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&studentRow{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, insertBatchSize).Error
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	return nil
}

func (r *GormRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
