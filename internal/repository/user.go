package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"gradebook/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type UserRepository interface {
	List() ([]models.User, error)
	GetByID(id int64) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Create(name, email, passwordHash string) (*models.User, error)
	Update(id int64, name, passwordHash *string) (*models.User, error)
	Delete(id int64) error
	Roles(userID int64) ([]models.Role, error)
	HasRole(userID int64, role string) (bool, error)
	AssignRole(userID int64, role string) error
	RevokeRole(userID int64, role string) error
}

type userRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewUserRepository(db *sqlx.DB, logger *zap.Logger) UserRepository {
	return &userRepository{db: db, logger: logger}
}

const userColumns = `id, name, email, password_hash, active, created_at`

func (r *userRepository) List() ([]models.User, error) {
	users := []models.User{}
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`
	if err := r.db.Select(&users, query); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *userRepository) GetByID(id int64) (*models.User, error) {
	var user models.User
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	if err := r.db.Get(&user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	if err := r.db.Get(&user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &user, nil
}

func (r *userRepository) Create(name, email, passwordHash string) (*models.User, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.Get(&exists, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email); err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, ErrDuplicate
	}

	user := models.User{Name: name, Email: email, PasswordHash: passwordHash}
	query := `INSERT INTO users (name, email, password_hash) VALUES ($1, $2, $3) RETURNING id, active, created_at`
	if err := tx.QueryRowx(query, name, email, passwordHash).Scan(&user.ID, &user.Active, &user.CreatedAt); err != nil {
		return nil, classifyPQ(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, classifyPQ(err)
	}
	return &user, nil
}

// Update patches name and/or password hash; nil fields keep their
// stored value.
func (r *userRepository) Update(id int64, name, passwordHash *string) (*models.User, error) {
	var user models.User
	query := `UPDATE users
	          SET name = COALESCE($1, name), password_hash = COALESCE($2, password_hash)
	          WHERE id = $3
	          RETURNING ` + userColumns
	if err := r.db.QueryRowx(query, name, passwordHash, id).StructScan(&user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update user %d: %w", id, err)
	}
	return &user, nil
}

func (r *userRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM users WHERE id = $1`, id)
	if err != nil {
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

func (r *userRepository) Roles(userID int64) ([]models.Role, error) {
	roles := []models.Role{}
	query := `SELECT r.id, r.name FROM roles r
	          JOIN user_roles ur ON ur.role_id = r.id
	          WHERE ur.user_id = $1
	          ORDER BY r.name`
	if err := r.db.Select(&roles, query, userID); err != nil {
		return nil, fmt.Errorf("list roles for user %d: %w", userID, err)
	}
	return roles, nil
}

func (r *userRepository) HasRole(userID int64, role string) (bool, error) {
	var has bool
	query := `SELECT EXISTS(
	            SELECT 1 FROM user_roles ur
	            JOIN roles r ON r.id = ur.role_id
	            WHERE ur.user_id = $1 AND r.name = $2)`
	if err := r.db.Get(&has, query, userID, role); err != nil {
		return false, fmt.Errorf("check role %q for user %d: %w", role, userID, err)
	}
	return has, nil
}

func (r *userRepository) AssignRole(userID int64, role string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.Get(&exists, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, userID); err != nil {
		return fmt.Errorf("check user: %w", err)
	}
	if !exists {
		return ErrNotFound
	}

	var roleID int64
	if err := tx.Get(&roleID, `SELECT id FROM roles WHERE name = $1`, role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("role %q: %w", role, ErrInvalidReference)
		}
		return fmt.Errorf("get role %q: %w", role, err)
	}

	if err := tx.Get(&exists, `SELECT EXISTS(SELECT 1 FROM user_roles WHERE user_id = $1 AND role_id = $2)`, userID, roleID); err != nil {
		return fmt.Errorf("check assignment: %w", err)
	}
	if exists {
		return ErrDuplicate
	}

	if _, err := tx.Exec(`INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)`, userID, roleID); err != nil {
		return classifyPQ(err)
	}
	return classifyPQ(tx.Commit())
}

func (r *userRepository) RevokeRole(userID int64, role string) error {
	result, err := r.db.Exec(
		`DELETE FROM user_roles WHERE user_id = $1 AND role_id = (SELECT id FROM roles WHERE name = $2)`,
		userID, role)
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
