package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/digennarot/dndScheduler/internal/domain"
)

func (r *Repository) CreatePoll(poll *domain.Poll) error {
	query := `
		INSERT INTO polls (id, title, description, location, organizer_id, duration_minutes, dates, time_slots, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	dates, err := json.Marshal(poll.Dates)
	if err != nil {
		return err
	}
	timeSlots, err := json.Marshal(poll.TimeSlots)
	if err != nil {
		return err
	}

	params := []any{
		poll.ID,
		poll.Title,
		poll.Description,
		poll.Location,
		poll.OrganizerID,
		poll.Duration,
		dates,
		timeSlots,
		poll.Status,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&poll.CreatedAt, &poll.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetPollByID(id string) (*domain.Poll, error) {
	query := `
		SELECT title, description, location, organizer_id, duration_minutes, dates, time_slots, status, final_slot, created_at, version
		FROM polls
		WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	poll := &domain.Poll{ID: id}
	var dates, timeSlots []byte
	dst := []any{
		&poll.Title,
		&poll.Description,
		&poll.Location,
		&poll.OrganizerID,
		&poll.Duration,
		&dates,
		&timeSlots,
		&poll.Status,
		&poll.FinalSlot,
		&poll.CreatedAt,
		&poll.Version,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(dates, &poll.Dates); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(timeSlots, &poll.TimeSlots); err != nil {
		return nil, err
	}

	return poll, nil
}

func (r *Repository) GetPollsByOrganizerID(organizerID int64) ([]*domain.Poll, error) {
	query := `
		SELECT id, title, description, location, duration_minutes, dates, time_slots, status, final_slot, created_at, version
		FROM polls
		WHERE organizer_id = $1
		ORDER BY created_at DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, organizerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	polls := []*domain.Poll{}
	for rows.Next() {
		poll := &domain.Poll{OrganizerID: organizerID}
		var dates, timeSlots []byte
		dst := []any{
			&poll.ID,
			&poll.Title,
			&poll.Description,
			&poll.Location,
			&poll.Duration,
			&dates,
			&timeSlots,
			&poll.Status,
			&poll.FinalSlot,
			&poll.CreatedAt,
			&poll.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(dates, &poll.Dates); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(timeSlots, &poll.TimeSlots); err != nil {
			return nil, err
		}
		polls = append(polls, poll)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return polls, nil
}

func (r *Repository) UpdatePoll(poll *domain.Poll) error {
	query := `
		UPDATE polls
		SET title = $1, description = $2, location = $3, duration_minutes = $4, dates = $5, time_slots = $6, status = $7, final_slot = $8, version = version + 1
		WHERE id = $9 AND version = $10
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	dates, err := json.Marshal(poll.Dates)
	if err != nil {
		return err
	}
	timeSlots, err := json.Marshal(poll.TimeSlots)
	if err != nil {
		return err
	}

	params := []any{
		poll.Title,
		poll.Description,
		poll.Location,
		poll.Duration,
		dates,
		timeSlots,
		poll.Status,
		poll.FinalSlot,
		poll.ID,
		poll.Version,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&poll.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeletePoll(id string) error {
	query := `
		DELETE FROM polls
		WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
