package dto

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

// PageQuery page/per_page query parameters
type PageQuery struct {
	Page    int `form:"page" binding:"omitempty,gte=1"`
	PerPage int `form:"per_page" binding:"omitempty,gte=1,lte=100"`
}

// Normalize fills defaults
func (q *PageQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = defaultPerPage
	}
	if q.PerPage > maxPerPage {
		q.PerPage = maxPerPage
	}
}

// Offset row offset of the current page
func (q PageQuery) Offset() int {
	return (q.Page - 1) * q.PerPage
}

// BucketURI month/year path parameters
type BucketURI struct {
	Month int `uri:"month" binding:"required,gte=1,lte=12"`
	Year  int `uri:"year" binding:"required,gte=1900,lte=9999"`
}

// YearQuery optional ?year= filter
type YearQuery struct {
	Year int `form:"year" binding:"omitempty,gte=1900,lte=9999"`
}

// YearPtr returns nil when no year was given
func (q YearQuery) YearPtr() *int {
	if q.Year == 0 {
		return nil
	}
	y := q.Year
	return &y
}
