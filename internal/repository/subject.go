package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"gradebook/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type SubjectRepository interface {
	List() ([]models.Subject, error)
	GetByID(id int64) (*models.Subject, error)
	Create(in models.SubjectInput) (*models.Subject, error)
	Update(id int64, in models.SubjectInput) (*models.Subject, error)
	Delete(id int64) error
}

type subjectRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewSubjectRepository(db *sqlx.DB, logger *zap.Logger) SubjectRepository {
	return &subjectRepository{db: db, logger: logger}
}

func (r *subjectRepository) List() ([]models.Subject, error) {
	subjects := []models.Subject{}
	query := `SELECT id, name, code, year FROM subjects ORDER BY year, name`
	if err := r.db.Select(&subjects, query); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}

func (r *subjectRepository) GetByID(id int64) (*models.Subject, error) {
	var subject models.Subject
	query := `SELECT id, name, code, year FROM subjects WHERE id = $1`
	if err := r.db.Get(&subject, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get subject %d: %w", id, err)
	}
	return &subject, nil
}

func (r *subjectRepository) Create(in models.SubjectInput) (*models.Subject, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.Get(&exists, `SELECT EXISTS(SELECT 1 FROM subjects WHERE code = $1)`, in.Code); err != nil {
		return nil, fmt.Errorf("check subject code: %w", err)
	}
	if exists {
		return nil, ErrDuplicate
	}

	subject := models.Subject{Name: in.Name, Code: in.Code, Year: in.Year}
	query := `INSERT INTO subjects (name, code, year) VALUES ($1, $2, $3) RETURNING id`
	if err := tx.QueryRowx(query, in.Name, in.Code, in.Year).Scan(&subject.ID); err != nil {
		return nil, classifyPQ(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, classifyPQ(err)
	}
	return &subject, nil
}

func (r *subjectRepository) Update(id int64, in models.SubjectInput) (*models.Subject, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.Get(&exists, `SELECT EXISTS(SELECT 1 FROM subjects WHERE code = $1 AND id <> $2)`, in.Code, id); err != nil {
		return nil, fmt.Errorf("check subject code: %w", err)
	}
	if exists {
		return nil, ErrDuplicate
	}

	result, err := tx.Exec(`UPDATE subjects SET name = $1, code = $2, year = $3 WHERE id = $4`, in.Name, in.Code, in.Year, id)
	if err != nil {
		return nil, classifyPQ(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return nil, classifyPQ(err)
	}
	return &models.Subject{ID: id, Name: in.Name, Code: in.Code, Year: in.Year}, nil
}

func (r *subjectRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM subjects WHERE id = $1`, id)
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
