package profileinfra

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"

	"github.com/Abraxas-365/sift/pkg/kernel"
	"github.com/Abraxas-365/sift/screening/profile"
)

type PostgresScreeningRepository struct {
	db *sqlx.DB
}

func NewPostgresScreeningRepository(db *sqlx.DB) *PostgresScreeningRepository {
	return &PostgresScreeningRepository{db: db}
}

// ============================================================================
// Screenings
// ============================================================================

func (r *PostgresScreeningRepository) Create(ctx context.Context, s *profile.Screening) error {
	query := `
		INSERT INTO screenings (
			id, recruiter_id, role_name, required_skills,
			total_documents, processed_count, failed_count,
			status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	skills, err := json.Marshal(s.RequiredSkills)
	if err != nil {
		return profile.ErrInvalidProfileData().
			WithDetail("field", "required_skills").
			WithDetail("error", err.Error())
	}

	_, err = r.db.ExecContext(ctx, query,
		s.ID, s.RecruiterID, s.RoleName, skills,
		s.TotalDocuments, s.ProcessedCount, s.FailedCount,
		s.Status, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return profile.ErrRegistry.NewWithCause(profile.CodeScreeningNotFound, err).
			WithDetail("screening_id", s.ID.String()).
			WithDetail("operation", "create")
	}
	return nil
}

const screeningColumns = `
	id, recruiter_id, role_name, required_skills,
	total_documents, processed_count, failed_count,
	status, created_at, updated_at`

func (r *PostgresScreeningRepository) GetByID(ctx context.Context, id kernel.ScreeningID) (*profile.Screening, error) {
	query := `SELECT ` + screeningColumns + ` FROM screenings WHERE id = $1`

	row := &screeningRow{}
	if err := r.db.GetContext(ctx, row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, profile.ErrScreeningNotFound().
				WithDetail("screening_id", id.String())
		}
		return nil, profile.ErrRegistry.NewWithCause(profile.CodeScreeningNotFound, err).
			WithDetail("screening_id", id.String()).
			WithDetail("operation", "get")
	}
	return row.ToDomain()
}

func (r *PostgresScreeningRepository) ListByRecruiter(ctx context.Context, recruiter kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[profile.Screening], error) {
	var total int64
	if err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM screenings WHERE recruiter_id = $1`, recruiter); err != nil {
		return nil, profile.ErrRegistry.NewWithCause(profile.CodeScreeningNotFound, err).
			WithDetail("operation", "count")
	}

	query := `SELECT ` + screeningColumns + `
		FROM screenings
		WHERE recruiter_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows := []screeningRow{}
	if err := r.db.SelectContext(ctx, &rows, query, recruiter, pagination.PageSize, pagination.Offset()); err != nil {
		return nil, profile.ErrRegistry.NewWithCause(profile.CodeScreeningNotFound, err).
			WithDetail("operation", "list")
	}

	items := make([]profile.Screening, 0, len(rows))
	for i := range rows {
		s, err := rows[i].ToDomain()
		if err != nil {
			return nil, profile.ErrInvalidProfileData().
				WithDetail("screening_id", rows[i].ID).
				WithDetail("error", err.Error())
		}
		items = append(items, *s)
	}

	result := kernel.NewPaginated(items, total, pagination)
	return &result, nil
}

// ============================================================================
// Tasks
// ============================================================================

func (r *PostgresScreeningRepository) CreateTask(ctx context.Context, t *profile.Task) error {
	query := `
		INSERT INTO screening_tasks (
			id, screening_id, owner_id, file_path, file_name,
			status, attempts, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.ScreeningID, t.OwnerID, t.FilePath, t.FileName,
		t.Status, t.Attempts, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return profile.ErrRegistry.NewWithCause(profile.CodeTaskUpdateFailed, err).
			WithDetail("task_id", t.ID).
			WithDetail("operation", "create")
	}
	return nil
}

func (r *PostgresScreeningRepository) GetTask(ctx context.Context, taskID string) (*profile.Task, error) {
	query := `
		SELECT id, screening_id, owner_id, file_path, file_name,
		       status, attempts, last_error, profile_id, created_at, updated_at
		FROM screening_tasks
		WHERE id = $1`

	row := &taskRow{}
	if err := r.db.GetContext(ctx, row, query, taskID); err != nil {
		if err == sql.ErrNoRows {
			return nil, profile.ErrScreeningNotFound().
				WithDetail("task_id", taskID)
		}
		return nil, profile.ErrRegistry.NewWithCause(profile.CodeTaskUpdateFailed, err).
			WithDetail("task_id", taskID).
			WithDetail("operation", "get")
	}
	return row.ToDomain(), nil
}

func (r *PostgresScreeningRepository) MarkTaskProcessing(ctx context.Context, taskID string) error {
	return r.inTx(ctx, func(tx *sqlx.Tx) error {
		var screeningID string
		err := tx.GetContext(ctx, &screeningID, `
			UPDATE screening_tasks
			SET status = $1, updated_at = NOW()
			WHERE id = $2
			RETURNING screening_id`,
			profile.TaskProcessing, taskID)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE screenings
			SET status = $1, updated_at = NOW()
			WHERE id = $2 AND status = $3`,
			profile.ScreeningProcessing, screeningID, profile.ScreeningPending)
		return err
	}, taskID)
}

func (r *PostgresScreeningRepository) MarkTaskCompleted(ctx context.Context, taskID string, profileID kernel.ProfileID) error {
	return r.inTx(ctx, func(tx *sqlx.Tx) error {
		var screeningID string
		err := tx.GetContext(ctx, &screeningID, `
			UPDATE screening_tasks
			SET status = $1, profile_id = $2, updated_at = NOW()
			WHERE id = $3
			RETURNING screening_id`,
			profile.TaskCompleted, profileID, taskID)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE screenings
			SET processed_count = processed_count + 1,
			    status = CASE
			        WHEN processed_count + failed_count + 1 >= total_documents THEN $1
			        ELSE status
			    END,
			    updated_at = NOW()
			WHERE id = $2`,
			profile.ScreeningCompleted, screeningID)
		return err
	}, taskID)
}

// MarkTaskFailed increments the attempt counter; the screening's failed
// count only moves once the task has exhausted its retries.
func (r *PostgresScreeningRepository) MarkTaskFailed(ctx context.Context, taskID string, errorMsg string) error {
	return r.inTx(ctx, func(tx *sqlx.Tx) error {
		var row struct {
			ScreeningID string `db:"screening_id"`
			Attempts    int    `db:"attempts"`
		}
		err := tx.GetContext(ctx, &row, `
			UPDATE screening_tasks
			SET status = $1, attempts = attempts + 1, last_error = $2, updated_at = NOW()
			WHERE id = $3
			RETURNING screening_id, attempts`,
			profile.TaskFailed, errorMsg, taskID)
		if err != nil {
			return err
		}
		if row.Attempts < profile.MaxTaskAttempts {
			return nil
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE screenings
			SET failed_count = failed_count + 1,
			    status = CASE
			        WHEN processed_count + failed_count + 1 >= total_documents THEN $1
			        ELSE status
			    END,
			    updated_at = NOW()
			WHERE id = $2`,
			profile.ScreeningCompleted, row.ScreeningID)
		return err
	}, taskID)
}

func (r *PostgresScreeningRepository) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error, taskID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return profile.ErrRegistry.NewWithCause(profile.CodeTaskUpdateFailed, err).
			WithDetail("task_id", taskID).
			WithDetail("operation", "begin_tx")
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return profile.ErrRegistry.NewWithCause(profile.CodeTaskUpdateFailed, err).
			WithDetail("task_id", taskID)
	}
	if err := tx.Commit(); err != nil {
		return profile.ErrRegistry.NewWithCause(profile.CodeTaskUpdateFailed, err).
			WithDetail("task_id", taskID).
			WithDetail("operation", "commit")
	}
	return nil
}
