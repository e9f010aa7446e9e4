package repository

import (
	"context"
	"time"

	"github.com/digennarot/dndScheduler/internal/domain"
)

// ReplaceAvailability drops a participant's previous submission and stores
// the new one in a single transaction, so readers never observe a mix of
// the two.
func (r *Repository) ReplaceAvailability(pollID string, participantID string, records []*domain.AvailabilityRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	deleteQuery := `
		DELETE FROM availability_records
		WHERE poll_id = $1 AND participant_id = $2
	`
	if _, err := tx.ExecContext(ctx, deleteQuery, pollID, participantID); err != nil {
		return err
	}

	insertQuery := `
		INSERT INTO availability_records (poll_id, participant_id, date, time_slot, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	for _, record := range records {
		params := []any{pollID, participantID, record.Date, record.TimeSlot, record.Status}
		if err := tx.QueryRowContext(ctx, insertQuery, params...).Scan(&record.ID); err != nil {
			return err
		}
		record.PollID = pollID
		record.ParticipantID = participantID
	}

	return tx.Commit()
}

func (r *Repository) GetAvailabilityByPollID(pollID string) ([]*domain.AvailabilityRecord, error) {
	query := `
		SELECT id, participant_id, date, time_slot, status
		FROM availability_records
		WHERE poll_id = $1
		ORDER BY date, time_slot
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, pollID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []*domain.AvailabilityRecord{}
	for rows.Next() {
		record := &domain.AvailabilityRecord{PollID: pollID}
		dst := []any{
			&record.ID,
			&record.ParticipantID,
			&record.Date,
			&record.TimeSlot,
			&record.Status,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func (r *Repository) GetAvailabilityByParticipant(pollID string, participantID string) ([]*domain.AvailabilityRecord, error) {
	query := `
		SELECT id, date, time_slot, status
		FROM availability_records
		WHERE poll_id = $1 AND participant_id = $2
		ORDER BY date, time_slot
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, pollID, participantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []*domain.AvailabilityRecord{}
	for rows.Next() {
		record := &domain.AvailabilityRecord{PollID: pollID, ParticipantID: participantID}
		dst := []any{
			&record.ID,
			&record.Date,
			&record.TimeSlot,
			&record.Status,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
