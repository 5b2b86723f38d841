package kernel

type Email string

func (e Email) String() string { return string(e) }
func (e Email) IsEmpty() bool  { return string(e) == "" }

type RoleName string

func (r RoleName) String() string { return string(r) }

type BucketURL string

// PaginationOptions is the common request shape for listing endpoints.
type PaginationOptions struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

func (p PaginationOptions) Normalize() PaginationOptions {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 || p.PageSize > 100 {
		p.PageSize = 20
	}
	return p
}

func (p PaginationOptions) Offset() int { return (p.Page - 1) * p.PageSize }

// Paginated wraps a page of results with its total count.
type Paginated[T any] struct {
	Items    []T   `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}

func NewPaginated[T any](items []T, total int64, opts PaginationOptions) Paginated[T] {
	return Paginated[T]{
		Items:    items,
		Total:    total,
		Page:     opts.Page,
		PageSize: opts.PageSize,
	}
}
