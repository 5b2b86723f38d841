package profileinfra

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"

	"github.com/Abraxas-365/sift/pkg/kernel"
	"github.com/Abraxas-365/sift/screening/profile"
)

type PostgresProfileRepository struct {
	db *sqlx.DB
}

func NewPostgresProfileRepository(db *sqlx.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

// ============================================================================
// Profile CRUD
// ============================================================================

func (r *PostgresProfileRepository) Create(ctx context.Context, p *profile.Profile) error {
	query := `
		INSERT INTO profiles (
			id, owner_id, screening_id,
			contact, education, skills,
			years_of_experience, level, score,
			file_name, file_url, parsed_at, created_at
		) VALUES (
			$1, $2, $3,
			$4, $5, $6,
			$7, $8, $9,
			$10, $11, $12, $13
		)`

	contact, err := json.Marshal(p.Contact)
	if err != nil {
		return profile.ErrInvalidProfileData().
			WithDetail("field", "contact").
			WithDetail("error", err.Error())
	}
	education, err := json.Marshal(p.Education)
	if err != nil {
		return profile.ErrInvalidProfileData().
			WithDetail("field", "education").
			WithDetail("error", err.Error())
	}
	skills, err := json.Marshal(p.Skills)
	if err != nil {
		return profile.ErrInvalidProfileData().
			WithDetail("field", "skills").
			WithDetail("error", err.Error())
	}

	_, err = r.db.ExecContext(ctx, query,
		p.ID, p.OwnerID, nullable(string(p.ScreeningID)),
		contact, education, skills,
		p.Years, p.Level, p.Score,
		p.FileName, p.FileURL, p.ParsedAt, p.CreatedAt,
	)
	if err != nil {
		return profile.ErrRegistry.NewWithCause(profile.CodeInvalidProfileData, err).
			WithDetail("profile_id", p.ID.String()).
			WithDetail("operation", "create")
	}
	return nil
}

const profileColumns = `
	id, owner_id, screening_id,
	contact, education, skills,
	years_of_experience, level, score,
	file_name, file_url, parsed_at, created_at`

func (r *PostgresProfileRepository) GetByID(ctx context.Context, id kernel.ProfileID) (*profile.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`

	row := &profileRow{}
	if err := r.db.GetContext(ctx, row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, profile.ErrProfileNotFound().
				WithDetail("profile_id", id.String())
		}
		return nil, profile.ErrRegistry.NewWithCause(profile.CodeProfileNotFound, err).
			WithDetail("profile_id", id.String()).
			WithDetail("operation", "get")
	}
	return row.ToDomain()
}

func (r *PostgresProfileRepository) ListByOwner(ctx context.Context, owner kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[profile.Profile], error) {
	var total int64
	if err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM profiles WHERE owner_id = $1`, owner); err != nil {
		return nil, profile.ErrRegistry.NewWithCause(profile.CodeProfileNotFound, err).
			WithDetail("operation", "count")
	}

	query := `SELECT ` + profileColumns + `
		FROM profiles
		WHERE owner_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows := []profileRow{}
	if err := r.db.SelectContext(ctx, &rows, query, owner, pagination.PageSize, pagination.Offset()); err != nil {
		return nil, profile.ErrRegistry.NewWithCause(profile.CodeProfileNotFound, err).
			WithDetail("operation", "list")
	}

	items := make([]profile.Profile, 0, len(rows))
	for i := range rows {
		p, err := rows[i].ToDomain()
		if err != nil {
			return nil, profile.ErrInvalidProfileData().
				WithDetail("profile_id", rows[i].ID).
				WithDetail("error", err.Error())
		}
		items = append(items, *p)
	}

	result := kernel.NewPaginated(items, total, pagination)
	return &result, nil
}

func (r *PostgresProfileRepository) ListByScreening(ctx context.Context, id kernel.ScreeningID) ([]*profile.Profile, error) {
	query := `SELECT ` + profileColumns + `
		FROM profiles
		WHERE screening_id = $1
		ORDER BY score DESC, created_at ASC`

	rows := []profileRow{}
	if err := r.db.SelectContext(ctx, &rows, query, id); err != nil {
		return nil, profile.ErrRegistry.NewWithCause(profile.CodeProfileNotFound, err).
			WithDetail("screening_id", id.String()).
			WithDetail("operation", "list_by_screening")
	}

	out := make([]*profile.Profile, 0, len(rows))
	for i := range rows {
		p, err := rows[i].ToDomain()
		if err != nil {
			return nil, profile.ErrInvalidProfileData().
				WithDetail("profile_id", rows[i].ID).
				WithDetail("error", err.Error())
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *PostgresProfileRepository) Delete(ctx context.Context, id kernel.ProfileID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return profile.ErrRegistry.NewWithCause(profile.CodeProfileNotFound, err).
			WithDetail("profile_id", id.String()).
			WithDetail("operation", "delete")
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return profile.ErrProfileNotFound().
			WithDetail("profile_id", id.String())
	}
	return nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
