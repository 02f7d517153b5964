package dto

const (
	DefaultPageSize = 25
	MaxPageSize     = 100
)

// ListQuery carries the shared pagination and ordering parameters of list endpoints.
type ListQuery struct {
	Page        int    `form:"page" json:"page" validate:"omitempty,min=1"`
	PageSize    int    `form:"page_size" json:"page_size" validate:"omitempty,min=1,max=100"`
	OrderBy     string `form:"order_by" json:"order_by"`
	DescOrder   *bool  `form:"desc_order" json:"desc_order"`
	RandomOrder bool   `form:"random_order" json:"random_order"`
}

// Normalize fills defaults for unset values.
func (q *ListQuery) Normalize() {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	if q.OrderBy == "" {
		q.OrderBy = "id"
	}
	if q.DescOrder == nil {
		desc := true
		q.DescOrder = &desc
	}
}

func (q *ListQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

type Paginated[T any] struct {
	Results []T   `json:"results"`
	Count   int64 `json:"count"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
