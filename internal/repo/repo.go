package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var ErrNotFound = errors.New("not found")

// Profile is the engineer who signs the calculation reports.
type Profile struct {
	ID           int       `json:"id"`
	Login        string    `json:"login"`
	Email        string    `json:"email,omitempty"`
	FullName     string    `json:"full_name"`
	License      string    `json:"license"`
	Organization string    `json:"organization"`
	CreatedAt    time.Time `json:"created_at"`
}

type ProfileUpdate struct {
	FullName     string `json:"full_name"`
	License      string `json:"license"`
	Organization string `json:"organization"`
}

type Repository interface {
	CreateUser(ctx context.Context, login, email, password string) (int, error)
	GetBylogin(ctx context.Context, login string) (int, string, error)
	GetProfileByID(ctx context.Context, id int) (Profile, error)
	UpdateProfile(ctx context.Context, id int, upd ProfileUpdate) (Profile, error)
}

const Schema = `
CREATE TABLE IF NOT EXISTS users (
	id           SERIAL PRIMARY KEY,
	login        TEXT NOT NULL UNIQUE,
	email        TEXT NOT NULL UNIQUE,
	password     TEXT NOT NULL,
	full_name    TEXT NOT NULL DEFAULT '',
	license      TEXT NOT NULL DEFAULT '',
	organization TEXT NOT NULL DEFAULT '',
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserDB(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// Migrate creates the users table when missing.
func (r *PostgresUserRepository) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, Schema)
	return err
}

func (r *PostgresUserRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, password).Scan(&id)
	return id, err
}

// GetBylogin returns id 0 and an empty hash when the login is unknown.
func (r *PostgresUserRepository) GetBylogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string

	query := "SELECT id, password FROM users WHERE login=$1"

	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, "", nil
		}
		return 0, "", err
	}
	return id, hash, nil
}

func (r *PostgresUserRepository) GetProfileByID(ctx context.Context, id int) (Profile, error) {
	var p Profile
	query := "SELECT id, login, email, full_name, license, organization, created_at FROM users WHERE id=$1"
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&p.ID, &p.Login, &p.Email, &p.FullName, &p.License, &p.Organization, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, ErrNotFound
	}
	return p, err
}

func (r *PostgresUserRepository) UpdateProfile(ctx context.Context, id int, upd ProfileUpdate) (Profile, error) {
	var p Profile
	query := `UPDATE users SET full_name=$2, license=$3, organization=$4 WHERE id=$1
		RETURNING id, login, email, full_name, license, organization, created_at`
	err := r.db.QueryRowContext(ctx, query, id, upd.FullName, upd.License, upd.Organization).
		Scan(&p.ID, &p.Login, &p.Email, &p.FullName, &p.License, &p.Organization, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, ErrNotFound
	}
	return p, err
}
