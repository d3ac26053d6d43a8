package repos

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"lascala/internal/domain"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = `u.id, u.email, u.display_name, u.password_hash, u.role`

func (r *UserRepo) ByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.GetContext(ctx, &u, r.DB.Rebind(`SELECT `+userCols+` FROM users u WHERE LOWER(u.email) = LOWER(?)`), email)
	if err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *UserRepo) ByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	err := r.DB.GetContext(ctx, &u, r.DB.Rebind(`SELECT `+userCols+` FROM users u WHERE u.id = ?`), id)
	if err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *UserRepo) EmailTaken(ctx context.Context, email string) (bool, error) {
	var n int
	err := r.DB.GetContext(ctx, &n, r.DB.Rebind(`SELECT COUNT(*) FROM users WHERE LOWER(email) = LOWER(?)`), email)
	return n > 0, err
}

// Create stores a new account and returns it.
func (r *UserRepo) Create(ctx context.Context, email, displayName, hash, role string) (*domain.User, error) {
	u := &domain.User{ID: uuid.NewString(), Email: email, DisplayName: displayName, Hash: hash, Role: role}
	_, err := r.DB.ExecContext(ctx, r.DB.Rebind(`
		INSERT INTO users(id, email, display_name, password_hash, role, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`), u.ID, u.Email, u.DisplayName, u.Hash, u.Role, now())
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepo) BindSession(ctx context.Context, sid, userID string) error {
	ts := now()
	_, err := r.DB.ExecContext(ctx, r.DB.Rebind(`
		INSERT INTO sessions(id, user_id, created_at, last_seen)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET user_id = excluded.user_id, last_seen = excluded.last_seen`),
		sid, userID, ts, ts)
	return err
}

func (r *UserRepo) SessionUser(ctx context.Context, sid string) (*domain.User, error) {
	var u domain.User
	err := r.DB.GetContext(ctx, &u, r.DB.Rebind(`
		SELECT `+userCols+`
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.id = ?`), sid)
	if err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *UserRepo) UnbindSession(ctx context.Context, sid string) error {
	_, err := r.DB.ExecContext(ctx, r.DB.Rebind(`UPDATE sessions SET user_id = NULL, last_seen = ? WHERE id = ?`), now(), sid)
	return err
}
