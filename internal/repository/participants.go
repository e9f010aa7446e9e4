package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/digennarot/dndScheduler/internal/domain"
)

func (r *Repository) CreateParticipant(participant *domain.Participant) error {
	query := `
		INSERT INTO participants (id, poll_id, name, email, user_id, access_token)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	params := []any{
		participant.ID,
		participant.PollID,
		participant.Name,
		participant.Email,
		participant.UserID,
		participant.AccessToken,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&participant.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetParticipantByID(id string) (*domain.Participant, error) {
	query := `
		SELECT poll_id, name, email, user_id, access_token, created_at
		FROM participants
		WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	participant := &domain.Participant{ID: id}
	dst := []any{
		&participant.PollID,
		&participant.Name,
		&participant.Email,
		&participant.UserID,
		&participant.AccessToken,
		&participant.CreatedAt,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return participant, nil
}

// GetParticipantByPollAndEmail returns nil without error when no participant
// in the poll carries the given email.
func (r *Repository) GetParticipantByPollAndEmail(pollID string, email string) (*domain.Participant, error) {
	query := `
		SELECT id, name, email, user_id, access_token, created_at
		FROM participants
		WHERE poll_id = $1 AND email = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	participant := &domain.Participant{PollID: pollID}
	dst := []any{
		&participant.ID,
		&participant.Name,
		&participant.Email,
		&participant.UserID,
		&participant.AccessToken,
		&participant.CreatedAt,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, pollID, email).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return participant, nil
}

func (r *Repository) GetParticipantsByPollID(pollID string) ([]*domain.Participant, error) {
	query := `
		SELECT id, name, email, user_id, access_token, created_at
		FROM participants
		WHERE poll_id = $1
		ORDER BY created_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, pollID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participants := []*domain.Participant{}
	for rows.Next() {
		participant := &domain.Participant{PollID: pollID}
		dst := []any{
			&participant.ID,
			&participant.Name,
			&participant.Email,
			&participant.UserID,
			&participant.AccessToken,
			&participant.CreatedAt,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		participants = append(participants, participant)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return participants, nil
}
