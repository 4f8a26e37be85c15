package pagination

import (
	"github.com/andriansp/smartdesa-backend/pkg/types"
)

const (
	// DefaultPerPage is the standard page size when per_page is not provided.
	DefaultPerPage = 15
	// MaxPerPage caps how many rows any list query can request.
	MaxPerPage = 100
)

// Params holds page-based pagination inputs from controllers or services.
type Params struct {
	Page    int
	PerPage int
}

// Normalize enforces the configured defaults and caps.
func (p Params) Normalize() Params {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PerPage <= 0 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

// Offset returns the SQL offset for the normalized page.
func (p Params) Offset() int {
	norm := p.Normalize()
	return (norm.Page - 1) * norm.PerPage
}

// Limit returns the SQL limit for the normalized page.
func (p Params) Limit() int {
	return p.Normalize().PerPage
}

// Meta builds the response pagination block for a total row count.
func (p Params) Meta(total int64) types.Pagination {
	norm := p.Normalize()
	lastPage := int((total + int64(norm.PerPage) - 1) / int64(norm.PerPage))
	if lastPage < 1 {
		lastPage = 1
	}
	return types.Pagination{
		CurrentPage: norm.Page,
		LastPage:    lastPage,
		PerPage:     norm.PerPage,
		Total:       total,
	}
}
