package notices

import (
	"context"

	"github.com/dmitrijs2005/phonebook/internal/models"
)

// Repository lists and mutates notices. List returns every notice, active or
// not, newest first; read-side filtering is a presentation concern.
type Repository interface {
	List(ctx context.Context) ([]models.Notice, error)
	GetByID(ctx context.Context, id int64) (*models.Notice, error)
	Create(ctx context.Context, notice *models.Notice) (*models.Notice, error)
	Update(ctx context.Context, notice *models.Notice) error
	Delete(ctx context.Context, id int64) error
}
