package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"gradebook/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type StudentRepository interface {
	List(search string) ([]models.Student, error)
	GetByID(id int64) (*models.Student, error)
	Create(in models.StudentInput) (*models.Student, error)
	Update(id int64, in models.StudentInput) (*models.Student, error)
	Delete(id int64) error
}

type studentRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewStudentRepository(db *sqlx.DB, logger *zap.Logger) StudentRepository {
	return &studentRepository{db: db, logger: logger}
}

func (r *studentRepository) List(search string) ([]models.Student, error) {
	students := []models.Student{}
	query := `SELECT id, name, last_name, national_id, created_at FROM students`
	args := []interface{}{}
	if search != "" {
		query += ` WHERE name ILIKE $1 OR last_name ILIKE $1 OR national_id LIKE $1`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY last_name, name`
	if err := r.db.Select(&students, query, args...); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

func (r *studentRepository) GetByID(id int64) (*models.Student, error) {
	var student models.Student
	query := `SELECT id, name, last_name, national_id, created_at FROM students WHERE id = $1`
	if err := r.db.Get(&student, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get student %d: %w", id, err)
	}
	return &student, nil
}

// Create inserts a student after checking the national id is free. The
// check and the insert share one transaction; the unique index on
// national_id catches whatever races past the check.
func (r *studentRepository) Create(in models.StudentInput) (*models.Student, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.Get(&exists, `SELECT EXISTS(SELECT 1 FROM students WHERE national_id = $1)`, in.NationalID); err != nil {
		return nil, fmt.Errorf("check national id: %w", err)
	}
	if exists {
		return nil, ErrDuplicate
	}

	student := models.Student{Name: in.Name, LastName: in.LastName, NationalID: in.NationalID}
	query := `INSERT INTO students (name, last_name, national_id) VALUES ($1, $2, $3) RETURNING id, created_at`
	if err := tx.QueryRowx(query, in.Name, in.LastName, in.NationalID).Scan(&student.ID, &student.CreatedAt); err != nil {
		return nil, classifyPQ(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, classifyPQ(err)
	}
	return &student, nil
}

func (r *studentRepository) Update(id int64, in models.StudentInput) (*models.Student, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.Get(&exists, `SELECT EXISTS(SELECT 1 FROM students WHERE national_id = $1 AND id <> $2)`, in.NationalID, id); err != nil {
		return nil, fmt.Errorf("check national id: %w", err)
	}
	if exists {
		return nil, ErrDuplicate
	}

	student := models.Student{ID: id, Name: in.Name, LastName: in.LastName, NationalID: in.NationalID}
	query := `UPDATE students SET name = $1, last_name = $2, national_id = $3 WHERE id = $4 RETURNING created_at`
	if err := tx.QueryRowx(query, in.Name, in.LastName, in.NationalID, id).Scan(&student.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, classifyPQ(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, classifyPQ(err)
	}
	return &student, nil
}

func (r *studentRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		// ON DELETE RESTRICT on grades surfaces here.
		return classifyPQ(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
