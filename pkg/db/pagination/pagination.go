package pagination

const (
	defaultPageSize = 100
	maxPageSize     = 1000
)

// Pagination carries offset paging parameters bound from query strings.
type Pagination struct {
	Skip     int `form:"skip" validate:"gte=0"`
	PageSize int `form:"limit,default=100" validate:"gte=1,lte=1000"`
}

func (p Pagination) Offset() int {
	if p.Skip < 0 {
		return 0
	}
	return p.Skip
}

func (p Pagination) Limit() int {
	if p.PageSize <= 0 {
		return defaultPageSize
	}
	if p.PageSize > maxPageSize {
		return maxPageSize
	}
	return p.PageSize
}

// PageInfo reports the window returned by a list call.
type PageInfo struct {
	Total   int64 `json:"total"`
	Skip    int   `json:"skip"`
	Limit   int   `json:"limit"`
	HasMore bool  `json:"has_more"`
}

func BuildPageInfo(total int64, page Pagination) PageInfo {
	return PageInfo{
		Total:   total,
		Skip:    page.Offset(),
		Limit:   page.Limit(),
		HasMore: int64(page.Offset()+page.Limit()) < total,
	}
}
