package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"gradebook/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type GradeRepository interface {
	List(studentSearch, subjectSearch string) ([]models.GradeRow, error)
	GetByID(id int64) (*models.Grade, error)
	Create(in models.GradeInput) (*models.Grade, error)
	Update(id int64, in models.GradeUpdateInput) (*models.Grade, error)
	Delete(id int64) error
}

type gradeRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewGradeRepository(db *sqlx.DB, logger *zap.Logger) GradeRepository {
	return &gradeRepository{db: db, logger: logger}
}

func (r *gradeRepository) List(studentSearch, subjectSearch string) ([]models.GradeRow, error) {
	rows := []models.GradeRow{}
	query := `
		SELECT g.id, g.grade1, g.grade2, g.grade3,
		       s.id AS student_id, s.name AS student_name, s.last_name AS student_last_name,
		       m.id AS subject_id, m.name AS subject_name
		FROM grades g
		JOIN students s ON g.student_id = s.id
		JOIN subjects m ON g.subject_id = m.id`

	where := ""
	args := []interface{}{}
	if studentSearch != "" {
		args = append(args, "%"+studentSearch+"%")
		where += fmt.Sprintf(" (s.name ILIKE $%d OR s.last_name ILIKE $%d)", len(args), len(args))
	}
	if subjectSearch != "" {
		if where != "" {
			where += " AND"
		}
		args = append(args, "%"+subjectSearch+"%")
		where += fmt.Sprintf(" m.name ILIKE $%d", len(args))
	}
	if where != "" {
		query += " WHERE" + where
	}
	query += " ORDER BY s.last_name, s.name, m.name"

	if err := r.db.Select(&rows, query, args...); err != nil {
		return nil, fmt.Errorf("list grades: %w", err)
	}
	for i := range rows {
		rows[i].Average = models.GradeAverage(rows[i].Grade1, rows[i].Grade2, rows[i].Grade3)
	}
	return rows, nil
}

func (r *gradeRepository) GetByID(id int64) (*models.Grade, error) {
	var grade models.Grade
	query := `SELECT id, student_id, subject_id, grade1, grade2, grade3 FROM grades WHERE id = $1`
	if err := r.db.Get(&grade, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get grade %d: %w", id, err)
	}
	grade.Average = models.GradeAverage(grade.Grade1, grade.Grade2, grade.Grade3)
	return &grade, nil
}

// Create inserts a grade row after verifying the student and subject
// exist and that the (student, subject) pair has no grades yet. All
// checks run in one transaction with the insert; the pair's unique
// index is the final backstop against concurrent creates.
func (r *gradeRepository) Create(in models.GradeInput) (*models.Grade, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.Get(&exists, `SELECT EXISTS(SELECT 1 FROM students WHERE id = $1)`, in.StudentID); err != nil {
		return nil, fmt.Errorf("check student: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("student %d: %w", in.StudentID, ErrInvalidReference)
	}
	if err := tx.Get(&exists, `SELECT EXISTS(SELECT 1 FROM subjects WHERE id = $1)`, in.SubjectID); err != nil {
		return nil, fmt.Errorf("check subject: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("subject %d: %w", in.SubjectID, ErrInvalidReference)
	}
	if err := tx.Get(&exists, `SELECT EXISTS(SELECT 1 FROM grades WHERE student_id = $1 AND subject_id = $2)`, in.StudentID, in.SubjectID); err != nil {
		return nil, fmt.Errorf("check grade pair: %w", err)
	}
	if exists {
		return nil, ErrDuplicate
	}

	grade := models.Grade{
		StudentID: in.StudentID,
		SubjectID: in.SubjectID,
		Grade1:    *in.Grade1,
		Grade2:    *in.Grade2,
		Grade3:    *in.Grade3,
	}
	query := `INSERT INTO grades (student_id, subject_id, grade1, grade2, grade3) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := tx.QueryRowx(query, in.StudentID, in.SubjectID, grade.Grade1, grade.Grade2, grade.Grade3).Scan(&grade.ID); err != nil {
		return nil, classifyGradeInsert(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, classifyPQ(err)
	}
	grade.Average = models.GradeAverage(grade.Grade1, grade.Grade2, grade.Grade3)
	return &grade, nil
}

// Update replaces the three grade components. The student/subject pair
// is immutable once created.
func (r *gradeRepository) Update(id int64, in models.GradeUpdateInput) (*models.Grade, error) {
	var grade models.Grade
	query := `UPDATE grades SET grade1 = $1, grade2 = $2, grade3 = $3 WHERE id = $4
	          RETURNING id, student_id, subject_id, grade1, grade2, grade3`
	err := r.db.QueryRowx(query, *in.Grade1, *in.Grade2, *in.Grade3, id).StructScan(&grade)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update grade %d: %w", id, err)
	}
	grade.Average = models.GradeAverage(grade.Grade1, grade.Grade2, grade.Grade3)
	return &grade, nil
}

func (r *gradeRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM grades WHERE id = $1`, id)
	if err != nil {
		return err
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
