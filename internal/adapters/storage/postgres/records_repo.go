package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"pet-tracker/internal/domain/records"
)

type RecordsRepo struct {
	db *sql.DB
}

func NewRecordsRepo(db *sql.DB) *RecordsRepo {
	return &RecordsRepo{db: db}
}

func (r *RecordsRepo) Append(ctx context.Context, rec records.Record) error {
	data, err := records.EncodeData(rec.Data)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO pet_records (id, pet_id, kind, data, note, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`,
		rec.ID,
		rec.PetID,
		string(rec.Kind()),
		string(data),
		rec.Note,
		rec.CreatedAt,
	)
	return err
}

func (r *RecordsRepo) ListRecent(ctx context.Context, petID string, kind records.Kind, limit int) ([]records.Record, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, nil
	}

	var (
		sb   strings.Builder
		args = []any{petID}
		idx  = 2
	)

	sb.WriteString(`
		SELECT id, pet_id, kind, data, note, created_at
		FROM pet_records
		WHERE pet_id = $1
	`)
	if kind != "" {
		sb.WriteString(fmt.Sprintf(" AND kind = $%d", idx))
		args = append(args, string(kind))
		idx++
	}
	sb.WriteString(" ORDER BY created_at DESC, id DESC")
	if limit > 0 {
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", idx))
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]records.Record, 0)
	for rows.Next() {
		var (
			rec  records.Record
			k    string
			data []byte
		)
		if err := rows.Scan(&rec.ID, &rec.PetID, &k, &data, &rec.Note, &rec.CreatedAt); err != nil {
			return nil, err
		}
		d, err := records.DecodeData(records.Kind(k), data)
		if err != nil {
			return nil, fmt.Errorf("record %s: %w", rec.ID, err)
		}
		rec.Data = d
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *RecordsRepo) DeleteByPet(ctx context.Context, petID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM pet_records WHERE pet_id = $1`, petID)
	return err
}
