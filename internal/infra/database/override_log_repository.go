package database

import (
	"context"
	"database/sql"

	"github.com/prospekta/lead-tracker/internal/entity"
)

// OverrideLogRepository only reads the audit trail. The insert happens inside
// SubmissionRepository.OverrideOwnership so that the ownership change and its
// audit record commit atomically.
type OverrideLogRepository struct {
	DB *sql.DB
}

func NewOverrideLogRepository(db *sql.DB) *OverrideLogRepository {
	return &OverrideLogRepository{DB: db}
}

func (r *OverrideLogRepository) List(ctx context.Context) ([]*entity.OverrideLog, error) {
	query := `
		SELECT
			ol.id, ol.admin_id, ol.submission_id,
			COALESCE(ol.old_owner_id::text, ''), ol.new_owner_id, ol.reason, ol.created_at,
			admin.name, COALESCE(old_owner.name, ''), new_owner.name
		FROM override_logs ol
		JOIN users admin ON admin.id = ol.admin_id
		LEFT JOIN users old_owner ON old_owner.id = ol.old_owner_id
		JOIN users new_owner ON new_owner.id = ol.new_owner_id
		ORDER BY ol.created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*entity.OverrideLog
	for rows.Next() {
		var l entity.OverrideLog
		err := rows.Scan(
			&l.ID,
			&l.AdminID,
			&l.SubmissionID,
			&l.OldOwnerID,
			&l.NewOwnerID,
			&l.Reason,
			&l.CreatedAt,
			&l.AdminName,
			&l.OldOwnerName,
			&l.NewOwnerName,
		)
		if err != nil {
			return nil, err
		}
		logs = append(logs, &l)
	}
	return logs, rows.Err()
}
