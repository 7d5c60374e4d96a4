package types

type Filter struct {
	Search         string
	Filter         map[string]interface{}
	Sort           map[string]string
	Limit          int
	Offset         int
	Page           int
	WithPagination bool
}

type Pagination struct {
	TotalCount uint64 `json:"total_count"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"total_pages"`
}
