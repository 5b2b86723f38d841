package recommendinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Abraxas-365/sift/pkg/kernel"
	"github.com/Abraxas-365/sift/screening/recommend"
)

type PostgresRequirementRepository struct {
	db *sqlx.DB
}

func NewPostgresRequirementRepository(db *sqlx.DB) *PostgresRequirementRepository {
	return &PostgresRequirementRepository{db: db}
}

type requirementRow struct {
	ID          string    `db:"id"`
	RecruiterID string    `db:"recruiter_id"`
	RoleName    string    `db:"role_name"`
	Skills      []byte    `db:"skills"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r *requirementRow) ToDomain() (*recommend.Requirement, error) {
	req := &recommend.Requirement{
		ID:          kernel.RequirementID(r.ID),
		RecruiterID: kernel.UserID(r.RecruiterID),
		RoleName:    r.RoleName,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if err := json.Unmarshal(r.Skills, &req.Skills); err != nil {
		return nil, fmt.Errorf("failed to unmarshal skills: %w", err)
	}
	return req, nil
}

func (r *PostgresRequirementRepository) Create(ctx context.Context, req *recommend.Requirement) error {
	skills, err := json.Marshal(req.Skills)
	if err != nil {
		return recommend.ErrInvalidRequirement().
			WithDetail("field", "skills").
			WithDetail("error", err.Error())
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO requirements (id, recruiter_id, role_name, skills, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		req.ID, req.RecruiterID, req.RoleName, skills, req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		return recommend.ErrRegistry.NewWithCause(recommend.CodeInvalidRequirement, err).
			WithDetail("requirement_id", req.ID.String()).
			WithDetail("operation", "create")
	}
	return nil
}

func (r *PostgresRequirementRepository) Update(ctx context.Context, req *recommend.Requirement) error {
	skills, err := json.Marshal(req.Skills)
	if err != nil {
		return recommend.ErrInvalidRequirement().
			WithDetail("field", "skills").
			WithDetail("error", err.Error())
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE requirements
		SET role_name = $1, skills = $2, updated_at = NOW()
		WHERE id = $3`,
		req.RoleName, skills, req.ID,
	)
	if err != nil {
		return recommend.ErrRegistry.NewWithCause(recommend.CodeInvalidRequirement, err).
			WithDetail("requirement_id", req.ID.String()).
			WithDetail("operation", "update")
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return recommend.ErrRequirementNotFound().
			WithDetail("requirement_id", req.ID.String())
	}
	return nil
}

func (r *PostgresRequirementRepository) GetByID(ctx context.Context, id kernel.RequirementID) (*recommend.Requirement, error) {
	row := &requirementRow{}
	err := r.db.GetContext(ctx, row, `
		SELECT id, recruiter_id, role_name, skills, created_at, updated_at
		FROM requirements
		WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, recommend.ErrRequirementNotFound().
				WithDetail("requirement_id", id.String())
		}
		return nil, recommend.ErrRegistry.NewWithCause(recommend.CodeRequirementNotFound, err).
			WithDetail("requirement_id", id.String()).
			WithDetail("operation", "get")
	}
	return row.ToDomain()
}

func (r *PostgresRequirementRepository) ListByRecruiter(ctx context.Context, recruiter kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[recommend.Requirement], error) {
	var total int64
	if err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM requirements WHERE recruiter_id = $1`, recruiter); err != nil {
		return nil, recommend.ErrRegistry.NewWithCause(recommend.CodeRequirementNotFound, err).
			WithDetail("operation", "count")
	}

	rows := []requirementRow{}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, recruiter_id, role_name, skills, created_at, updated_at
		FROM requirements
		WHERE recruiter_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		recruiter, pagination.PageSize, pagination.Offset())
	if err != nil {
		return nil, recommend.ErrRegistry.NewWithCause(recommend.CodeRequirementNotFound, err).
			WithDetail("operation", "list")
	}

	items := make([]recommend.Requirement, 0, len(rows))
	for i := range rows {
		req, err := rows[i].ToDomain()
		if err != nil {
			return nil, recommend.ErrInvalidRequirement().
				WithDetail("requirement_id", rows[i].ID).
				WithDetail("error", err.Error())
		}
		items = append(items, *req)
	}

	result := kernel.NewPaginated(items, total, pagination)
	return &result, nil
}

func (r *PostgresRequirementRepository) Delete(ctx context.Context, id kernel.RequirementID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM requirements WHERE id = $1`, id)
	if err != nil {
		return recommend.ErrRegistry.NewWithCause(recommend.CodeRequirementNotFound, err).
			WithDetail("requirement_id", id.String()).
			WithDetail("operation", "delete")
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return recommend.ErrRequirementNotFound().
			WithDetail("requirement_id", id.String())
	}
	return nil
}
