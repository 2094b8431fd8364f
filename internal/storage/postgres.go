package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/and161185/bookdesk/internal/errs"
	"github.com/and161185/bookdesk/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStorage struct {
	db *pgxpool.Pool
}

func (store *PostgresStorage) initSchema(ctx context.Context) error {
	const initSchemaQuery = `
	CREATE TABLE IF NOT EXISTS admins (
		id SERIAL PRIMARY KEY,
		login TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ DEFAULT NOW()
	);
	CREATE TABLE IF NOT EXISTS admin_actions (
		id UUID PRIMARY KEY,
		admin_id INT NOT NULL REFERENCES admins(id),
		kind TEXT NOT NULL,
		target TEXT NOT NULL,
		outcome TEXT NOT NULL,
		detail TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS admin_actions_target_idx ON admin_actions (target, created_at DESC);`

	_, err := store.db.Exec(ctx, initSchemaQuery)
	return err
}

func NewPostgresStorage(ctx context.Context, databaseURI string) (*PostgresStorage, error) {
	db, err := pgxpool.New(ctx, databaseURI)
	if err != nil {
		return nil, err
	}

	storage := &PostgresStorage{db: db}

	if err := storage.Ping(ctx); err != nil {
		db.Close()
		return nil, err
	}

	if err := storage.initSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return storage, nil
}

func (store *PostgresStorage) Ping(ctx context.Context) error {
	return store.db.Ping(ctx)
}

func (store *PostgresStorage) Close() {
	store.db.Close()
}

func (store *PostgresStorage) CreateAdmin(ctx context.Context, login string, passwordHash string) error {
	const insertAdminQuery = `INSERT INTO admins (login, password_hash) VALUES ($1, $2)`

	_, err := store.db.Exec(ctx, insertAdminQuery, login, passwordHash)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// unique_violation
			return errs.ErrLoginAlreadyExists
		}
		return fmt.Errorf("create admin: %w", err)
	}

	return nil
}

// EnsureAdmin creates the admin unless the login is already taken.
func (store *PostgresStorage) EnsureAdmin(ctx context.Context, login string, passwordHash string) (bool, error) {
	err := store.CreateAdmin(ctx, login, passwordHash)
	if errors.Is(err, errs.ErrLoginAlreadyExists) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (store *PostgresStorage) GetAdminByLogin(ctx context.Context, login string) (model.Admin, string, error) {
	const query = `SELECT id, login, password_hash FROM admins WHERE login = $1`

	var admin model.Admin
	var hash string

	err := store.db.QueryRow(ctx, query, login).Scan(&admin.ID, &admin.Login, &hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Admin{}, "", errs.ErrAdminNotFound
		}
		return model.Admin{}, "", fmt.Errorf("get admin by login: %w", err)
	}

	return admin, hash, nil
}

func (store *PostgresStorage) GetAdminByID(ctx context.Context, id int) (model.Admin, error) {
	const query = `SELECT id, login FROM admins WHERE id = $1`

	var admin model.Admin

	err := store.db.QueryRow(ctx, query, id).Scan(&admin.ID, &admin.Login)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Admin{}, errs.ErrAdminNotFound
		}
		return model.Admin{}, fmt.Errorf("get admin by id: %w", err)
	}

	return admin, nil
}

func (store *PostgresStorage) RecordAction(ctx context.Context, action model.AdminAction) error {
	const query = `
		INSERT INTO admin_actions (id, admin_id, kind, target, outcome, detail)
		VALUES ($1, $2, $3, $4, $5, $6)`

	if action.ID == "" {
		action.ID = uuid.NewString()
	}

	_, err := store.db.Exec(ctx, query, action.ID, action.AdminID, action.Kind, action.Target, action.Outcome, action.Detail)
	if err != nil {
		return fmt.Errorf("record admin action: %w", err)
	}

	return nil
}

// ListActions returns the journal of one target, newest first.
func (store *PostgresStorage) ListActions(ctx context.Context, target string, limit int) ([]model.AdminAction, error) {
	const query = `
		SELECT id, admin_id, kind, target, outcome, detail, created_at
		FROM admin_actions
		WHERE target = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := store.db.Query(ctx, query, target, limit)
	if err != nil {
		return nil, fmt.Errorf("list admin actions: %w", err)
	}
	defer rows.Close()

	var list []model.AdminAction
	for rows.Next() {
		var a model.AdminAction
		var id uuid.UUID
		if err := rows.Scan(&id, &a.AdminID, &a.Kind, &a.Target, &a.Outcome, &a.Detail, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan admin action: %w", err)
		}
		a.ID = id.String()
		list = append(list, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return list, nil
}
