package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/prospekta/lead-tracker/internal/entity"
)

var ErrProjectInterestNotFound = errors.New("project interest not found")

type ProjectInterestRepository struct {
	DB *sql.DB
}

func NewProjectInterestRepository(db *sql.DB) *ProjectInterestRepository {
	return &ProjectInterestRepository{DB: db}
}

func (r *ProjectInterestRepository) FindByID(ctx context.Context, id string) (*entity.ProjectInterest, error) {
	query := `
		SELECT id, name, COALESCE(description, ''), is_active, created_at, updated_at
		FROM project_interests
		WHERE id = $1
	`

	var p entity.ProjectInterest
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrProjectInterestNotFound
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}
