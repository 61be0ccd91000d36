package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/prospekta/lead-tracker/internal/entity"
	"github.com/prospekta/lead-tracker/internal/usecase"
)

const uniqueViolation = "23505"

type SubmissionRepository struct {
	DB *sql.DB
}

func NewSubmissionRepository(db *sql.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

const submissionColumns = `
	s.id, s.user_id, s.name, s.phone_number, s.project_interest_id, s.notes,
	s.status, s.follow_up_status, s.is_hot_lead, s.original_submission_id,
	s.ownership_expires_at, s.created_at, s.updated_at, u.name, u.email`

func (r *SubmissionRepository) Create(ctx context.Context, s *entity.Submission) error {
	query := `
		INSERT INTO submissions (
			id, user_id, name, phone_number, project_interest_id, notes,
			status, original_submission_id, ownership_expires_at, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.DB.ExecContext(ctx, query,
		s.ID,
		s.UserID,
		s.Name,
		s.PhoneNumber,
		s.ProjectInterestID,
		nullString(s.Notes),
		s.Status,
		nullString(s.OriginalSubmissionID),
		s.OwnershipExpiresAt,
		s.CreatedAt,
		s.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return entity.ErrOwnershipTaken
		}
		return err
	}

	return nil
}

func (r *SubmissionRepository) FindByID(ctx context.Context, id string) (*entity.Submission, error) {
	query := `
		SELECT` + submissionColumns + `
		FROM submissions s
		JOIN users u ON u.id = s.user_id
		WHERE s.id = $1
	`

	s, err := scanSubmission(r.DB.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, entity.ErrSubmissionNotFound
	}
	return s, err
}

func (r *SubmissionRepository) FindChain(ctx context.Context, phoneNumber, projectInterestID string) ([]*entity.Submission, error) {
	query := `
		SELECT` + submissionColumns + `
		FROM submissions s
		JOIN users u ON u.id = s.user_id
		WHERE s.phone_number = $1 AND s.project_interest_id = $2
		ORDER BY s.created_at ASC, s.id ASC
	`

	rows, err := r.DB.QueryContext(ctx, query, phoneNumber, projectInterestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSubmissions(rows)
}

func (r *SubmissionRepository) ListByUser(ctx context.Context, userID string, f usecase.ListFilters) ([]*entity.Submission, error) {
	f.MarketerID = userID
	return r.list(ctx, f)
}

func (r *SubmissionRepository) ListAll(ctx context.Context, f usecase.ListFilters) ([]*entity.Submission, error) {
	return r.list(ctx, f)
}

func (r *SubmissionRepository) list(ctx context.Context, f usecase.ListFilters) ([]*entity.Submission, error) {
	var (
		where []string
		args  []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.MarketerID != "" {
		where = append(where, "s.user_id = "+arg(f.MarketerID))
	}
	if f.Status != "" {
		// hot_lead is a flag, not a row status; no row is ever stored with it.
		if f.Status == "hot_lead" {
			where = append(where, "s.is_hot_lead")
		} else {
			where = append(where, "s.status = "+arg(entity.NormalizeStatus(f.Status)))
		}
	}
	if f.DateFrom != nil {
		where = append(where, "s.created_at >= "+arg(*f.DateFrom))
	}
	if f.DateTo != nil {
		where = append(where, "s.created_at <= "+arg(*f.DateTo))
	}
	if f.Search != "" {
		pattern := arg("%" + f.Search + "%")
		where = append(where, fmt.Sprintf(
			"(s.name ILIKE %s OR s.phone_number ILIKE %s OR p.name ILIKE %s)",
			pattern, pattern, pattern))
	}

	query := `
		SELECT` + submissionColumns + `
		FROM submissions s
		JOIN users u ON u.id = s.user_id
		JOIN project_interests p ON p.id = s.project_interest_id
	`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY s.created_at DESC"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSubmissions(rows)
}

func (r *SubmissionRepository) ListHotLeads(ctx context.Context) ([]*entity.Submission, error) {
	query := `
		SELECT` + submissionColumns + `
		FROM submissions s
		JOIN users u ON u.id = s.user_id
		WHERE s.is_hot_lead
		ORDER BY s.created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSubmissions(rows)
}

func (r *SubmissionRepository) SetHotLead(ctx context.Context, phoneNumber, projectInterestID string, hot bool) error {
	query := `
		UPDATE submissions
		SET is_hot_lead = $3, updated_at = NOW()
		WHERE phone_number = $1 AND project_interest_id = $2
	`

	_, err := r.DB.ExecContext(ctx, query, phoneNumber, projectInterestID, hot)
	return err
}

func (r *SubmissionRepository) UpdateFollowUpStatus(ctx context.Context, id, userID, followUpStatus string) (*entity.Submission, error) {
	query := `
		UPDATE submissions
		SET follow_up_status = $3, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING id
	`

	var updatedID string
	err := r.DB.QueryRowContext(ctx, query, id, userID, followUpStatus).Scan(&updatedID)
	if err == sql.ErrNoRows {
		return nil, entity.ErrSubmissionNotFound
	}
	if err != nil {
		return nil, err
	}

	return r.FindByID(ctx, updatedID)
}

// OverrideOwnership reassigns a submission and appends its audit record in a
// single transaction. Any other owned row in the group is demoted first so
// the single-owner index cannot reject the update.
func (r *SubmissionRepository) OverrideOwnership(ctx context.Context, log *entity.OverrideLog, expiresAt time.Time) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var phoneNumber, projectInterestID, oldOwnerID string
	err = tx.QueryRowContext(ctx, `
		SELECT phone_number, project_interest_id, user_id
		FROM submissions
		WHERE id = $1
		FOR UPDATE
	`, log.SubmissionID).Scan(&phoneNumber, &projectInterestID, &oldOwnerID)
	if err == sql.ErrNoRows {
		return entity.ErrSubmissionNotFound
	}
	if err != nil {
		return err
	}
	log.OldOwnerID = oldOwnerID

	_, err = tx.ExecContext(ctx, `
		UPDATE submissions
		SET status = 'duplicate', ownership_expires_at = NULL, updated_at = NOW()
		WHERE phone_number = $1 AND project_interest_id = $2
		  AND status = 'owned' AND id <> $3
	`, phoneNumber, projectInterestID, log.SubmissionID)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE submissions
		SET user_id = $2, status = 'owned', ownership_expires_at = $3, updated_at = NOW()
		WHERE id = $1
	`, log.SubmissionID, log.NewOwnerID, expiresAt)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO override_logs (id, admin_id, submission_id, old_owner_id, new_owner_id, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, log.ID, log.AdminID, log.SubmissionID, nullString(log.OldOwnerID), log.NewOwnerID, log.Reason, log.CreatedAt)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *SubmissionRepository) CountByUser(ctx context.Context, userID string) (*usecase.StatusCounts, error) {
	return r.count(ctx, userID)
}

func (r *SubmissionRepository) CountAll(ctx context.Context) (*usecase.StatusCounts, error) {
	return r.count(ctx, "")
}

func (r *SubmissionRepository) count(ctx context.Context, userID string) (*usecase.StatusCounts, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status IN ('owned', 'own')),
			COUNT(*) FILTER (WHERE status = 'duplicate'),
			COUNT(*) FILTER (WHERE status = 'expired'),
			COUNT(*) FILTER (WHERE is_hot_lead)
		FROM submissions
		WHERE ($1 = '' OR user_id = NULLIF($1, '')::uuid)
	`

	counts := &usecase.StatusCounts{}
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&counts.Total,
		&counts.Owned,
		&counts.Duplicate,
		&counts.Expired,
		&counts.HotLeads,
	)
	if err != nil {
		return nil, err
	}
	return counts, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSubmission(row rowScanner) (*entity.Submission, error) {
	var (
		s                  entity.Submission
		notes              sql.NullString
		followUpStatus     sql.NullString
		originalID         sql.NullString
		ownershipExpiresAt sql.NullTime
	)

	err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.Name,
		&s.PhoneNumber,
		&s.ProjectInterestID,
		&notes,
		&s.Status,
		&followUpStatus,
		&s.IsHotLead,
		&originalID,
		&ownershipExpiresAt,
		&s.CreatedAt,
		&s.UpdatedAt,
		&s.UserName,
		&s.UserEmail,
	)
	if err != nil {
		return nil, err
	}

	s.Notes = notes.String
	s.FollowUpStatus = followUpStatus.String
	s.OriginalSubmissionID = originalID.String
	if ownershipExpiresAt.Valid {
		t := ownershipExpiresAt.Time
		s.OwnershipExpiresAt = &t
	}
	s.Status = entity.NormalizeStatus(s.Status)

	return &s, nil
}

func collectSubmissions(rows *sql.Rows) ([]*entity.Submission, error) {
	var submissions []*entity.Submission
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		submissions = append(submissions, s)
	}
	return submissions, rows.Err()
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
