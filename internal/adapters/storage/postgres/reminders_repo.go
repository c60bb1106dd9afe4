package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"pet-tracker/internal/domain/reminders"
)

type RemindersRepo struct {
	db *sql.DB
}

func NewRemindersRepo(db *sql.DB) *RemindersRepo {
	return &RemindersRepo{db: db}
}

const reminderColumns = `
	id, owner_user_id, pet_id,
	title, description, category,
	scheduled_at, completed, created_at`

func (r *RemindersRepo) Create(ctx context.Context, rem reminders.Reminder) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reminders (`+reminderColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		rem.ID,
		rem.OwnerUserID,
		rem.PetID,
		rem.Title,
		rem.Description,
		string(rem.Category),
		rem.ScheduledAt,
		rem.Completed,
		rem.CreatedAt,
	)
	return err
}

// Update usa COALESCE: un parámetro NULL deja la columna como está.
func (r *RemindersRepo) Update(ctx context.Context, id string, p reminders.Patch) error {
	var category *string
	if p.Category != nil {
		c := string(*p.Category)
		category = &c
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE reminders
		SET
			pet_id       = COALESCE($2::text, pet_id),
			title        = COALESCE($3::text, title),
			description  = COALESCE($4::text, description),
			category     = COALESCE($5::text, category),
			scheduled_at = COALESCE($6::timestamptz, scheduled_at),
			completed    = COALESCE($7::boolean, completed)
		WHERE id = $1
	`,
		id,
		p.PetID,
		p.Title,
		p.Description,
		category,
		p.ScheduledAt,
		p.Completed,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return reminders.ErrNotFound
	}
	return nil
}

func (r *RemindersRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reminders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return reminders.ErrNotFound
	}
	return nil
}

func (r *RemindersRepo) DeleteByPet(ctx context.Context, petID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM reminders WHERE pet_id = $1`, petID)
	return err
}

func (r *RemindersRepo) GetByID(ctx context.Context, id string) (reminders.Reminder, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return reminders.Reminder{}, reminders.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+reminderColumns+` FROM reminders WHERE id = $1`, id)
	rem, err := scanReminder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return reminders.Reminder{}, reminders.ErrNotFound
	}
	return rem, err
}

func (r *RemindersRepo) ListInRange(ctx context.Context, ownerUserID string, from, to time.Time) ([]reminders.Reminder, error) {
	return r.list(ctx, `
		SELECT `+reminderColumns+`
		FROM reminders
		WHERE owner_user_id = $1
		  AND scheduled_at >= $2
		  AND scheduled_at <= $3
		ORDER BY scheduled_at ASC, id ASC
	`, ownerUserID, from, to)
}

func (r *RemindersRepo) ListDueBetween(ctx context.Context, from, to time.Time) ([]reminders.Reminder, error) {
	return r.list(ctx, `
		SELECT `+reminderColumns+`
		FROM reminders
		WHERE NOT completed
		  AND scheduled_at > $1
		  AND scheduled_at <= $2
		ORDER BY scheduled_at ASC, id ASC
	`, from, to)
}

func (r *RemindersRepo) list(ctx context.Context, query string, args ...any) ([]reminders.Reminder, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]reminders.Reminder, 0)
	for rows.Next() {
		rem, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rem)
	}
	return out, rows.Err()
}

func scanReminder(s scanner) (reminders.Reminder, error) {
	var (
		rem      reminders.Reminder
		category string
	)
	if err := s.Scan(
		&rem.ID,
		&rem.OwnerUserID,
		&rem.PetID,
		&rem.Title,
		&rem.Description,
		&category,
		&rem.ScheduledAt,
		&rem.Completed,
		&rem.CreatedAt,
	); err != nil {
		return reminders.Reminder{}, err
	}
	rem.Category = reminders.Category(category)
	return rem, nil
}
