package repository

import (
	"context"
	"time"

	"github.com/digennarot/dndScheduler/internal/domain"
)

func (r *Repository) CreateOrganizer(organizer *domain.Organizer) error {
	query := `
		INSERT INTO organizers (username, password_hash, full_name, email)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	params := []any{organizer.Username, organizer.PasswordHash, organizer.FullName, organizer.Email}
	dst := []any{&organizer.ID, &organizer.CreatedAt, &organizer.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetOrganizerByID(id int64) (*domain.Organizer, error) {
	query := `
		SELECT username, password_hash, full_name, email, created_at, version
		FROM organizers
		WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	organizer := &domain.Organizer{ID: id}
	dst := []any{
		&organizer.Username,
		&organizer.PasswordHash,
		&organizer.FullName,
		&organizer.Email,
		&organizer.CreatedAt,
		&organizer.Version,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return organizer, nil
}

func (r *Repository) GetOrganizerByUsername(username string) (*domain.Organizer, error) {
	query := `
		SELECT id, password_hash, full_name, email, created_at, version
		FROM organizers
		WHERE username = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	organizer := &domain.Organizer{Username: username}
	dst := []any{
		&organizer.ID,
		&organizer.PasswordHash,
		&organizer.FullName,
		&organizer.Email,
		&organizer.CreatedAt,
		&organizer.Version,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, username).Scan(dst...); err != nil {
		return nil, err
	}

	return organizer, nil
}

func (r *Repository) UpdateOrganizer(organizer *domain.Organizer) error {
	query := `
		UPDATE organizers
		SET password_hash = $1, full_name = $2, email = $3, version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	params := []any{
		organizer.PasswordHash,
		organizer.FullName,
		organizer.Email,
		organizer.ID,
		organizer.Version,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&organizer.Version); err != nil {
		return err
	}

	return nil
}
