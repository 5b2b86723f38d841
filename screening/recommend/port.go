package recommend

import (
	"context"

	"github.com/Abraxas-365/sift/pkg/kernel"
)

type RequirementRepository interface {
	Create(ctx context.Context, r *Requirement) error
	Update(ctx context.Context, r *Requirement) error
	GetByID(ctx context.Context, id kernel.RequirementID) (*Requirement, error)
	ListByRecruiter(ctx context.Context, recruiter kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[Requirement], error)
	Delete(ctx context.Context, id kernel.RequirementID) error
}
