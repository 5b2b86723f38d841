package profile

import (
	"context"
	"time"

	"github.com/Abraxas-365/sift/pkg/kernel"
)

type Repository interface {
	// Create stores a newly assembled profile
	Create(ctx context.Context, p *Profile) error

	// GetByID retrieves a profile by ID
	GetByID(ctx context.Context, id kernel.ProfileID) (*Profile, error)

	// ListByOwner retrieves the profiles a user has parsed
	ListByOwner(ctx context.Context, owner kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[Profile], error)

	// ListByScreening retrieves all profiles produced by one screening run,
	// ordered by score descending
	ListByScreening(ctx context.Context, id kernel.ScreeningID) ([]*Profile, error)

	// Delete removes a profile
	Delete(ctx context.Context, id kernel.ProfileID) error
}

type ScreeningRepository interface {
	Create(ctx context.Context, s *Screening) error
	GetByID(ctx context.Context, id kernel.ScreeningID) (*Screening, error)
	ListByRecruiter(ctx context.Context, recruiter kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[Screening], error)

	// Task bookkeeping
	CreateTask(ctx context.Context, t *Task) error
	GetTask(ctx context.Context, taskID string) (*Task, error)
	MarkTaskProcessing(ctx context.Context, taskID string) error
	MarkTaskCompleted(ctx context.Context, taskID string, profileID kernel.ProfileID) error
	MarkTaskFailed(ctx context.Context, taskID string, errorMsg string) error
}

// TaskQueue is the transport between the API and the screening workers.
type TaskQueue interface {
	// Enqueue adds a task to the queue
	Enqueue(ctx context.Context, task *Task) error

	// Dequeue pops a task, blocking up to timeout
	Dequeue(ctx context.Context, timeout time.Duration) (*Task, error)

	// EnqueueDelayed schedules a task for later processing (retries)
	EnqueueDelayed(ctx context.Context, task *Task, delay time.Duration) error

	// MoveDelayedToReady moves due delayed tasks onto the main queue
	MoveDelayedToReady(ctx context.Context) (int, error)

	// Size returns the number of ready tasks
	Size(ctx context.Context) (int64, error)
}
