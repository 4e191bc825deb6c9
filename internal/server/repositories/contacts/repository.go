package contacts

import (
	"context"

	"github.com/dmitrijs2005/phonebook/internal/models"
)

// ListParams narrows and pages the contact listing. Search matches first
// name, last name, or email, case-insensitively. CompanyID of zero means no
// company filter.
type ListParams struct {
	Page      int
	PerPage   int
	Search    string
	CompanyID int64
}

// Repository lists and mutates contact records. List returns one page plus
// the total row count for that filter, so the caller can derive pagination.
type Repository interface {
	List(ctx context.Context, p ListParams) ([]models.Contact, int, error)
	GetByID(ctx context.Context, id int64) (*models.Contact, error)
	Create(ctx context.Context, contact *models.Contact) (*models.Contact, error)
	Update(ctx context.Context, contact *models.Contact) error
	Delete(ctx context.Context, id int64) error
}
