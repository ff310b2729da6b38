package repository

import (
	"context"

	"github.com/Raunak-23/EvalAI-paper-correction/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository handles user data access.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*model.User, error) {
	u := &model.User{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, email, password_hash, first_name, last_name, role, department, grade, teacher_id, student_id, created_at
		 FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Role,
		&u.Department, &u.Grade, &u.TeacherID, &u.StudentID, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetByEmail retrieves a user by their unique email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	u := &model.User{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, email, password_hash, first_name, last_name, role, department, grade, teacher_id, student_id, created_at
		 FROM users WHERE email = lower($1)`, email,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Role,
		&u.Department, &u.Grade, &u.TeacherID, &u.StudentID, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Create inserts a new user. The email is stored lowercased; a duplicate
// surfaces as a pgconn unique violation (23505) for the caller to map.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, first_name, last_name, role, department, grade, teacher_id, student_id)
		 VALUES (lower($1), $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, email, created_at`,
		u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Role,
		u.Department, u.Grade, u.TeacherID, u.StudentID,
	).Scan(&u.ID, &u.Email, &u.CreatedAt)
}

// UpdateEmail changes a user's email address.
func (r *UserRepository) UpdateEmail(ctx context.Context, id int, email string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET email = lower($1) WHERE id = $2`, email, id)
	return err
}

// EmailTakenByOther reports whether the email belongs to a different user.
func (r *UserRepository) EmailTakenByOther(ctx context.Context, id int, email string) (bool, error) {
	var taken bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = lower($1) AND id <> $2)`, email, id,
	).Scan(&taken)
	return taken, err
}
