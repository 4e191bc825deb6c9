package companies

import (
	"context"

	"github.com/dmitrijs2005/phonebook/internal/models"
)

type Repository interface {
	List(ctx context.Context) ([]models.Company, error)
	GetByID(ctx context.Context, id int64) (*models.Company, error)
	Create(ctx context.Context, company *models.Company) (*models.Company, error)
	Update(ctx context.Context, company *models.Company) error
	Delete(ctx context.Context, id int64) error
}
