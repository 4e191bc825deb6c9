package companies

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/phonebook/internal/common"
	"github.com/dmitrijs2005/phonebook/internal/models"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const companyColumns = `id, name, industry, website, email, phone, address, city, state, zip_code, country, description, created_at, created_by`

func scanCompany(row interface{ Scan(...any) error }) (*models.Company, error) {
	c := &models.Company{}
	var createdBy sql.NullInt64
	err := row.Scan(&c.ID, &c.Name, &c.Industry, &c.Website, &c.Email, &c.Phone,
		&c.Address, &c.City, &c.State, &c.ZipCode, &c.Country, &c.Description,
		&c.CreatedAt, &createdBy)
	if err != nil {
		return nil, err
	}
	c.CreatedBy = createdBy.Int64
	return c, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`

	c, err := scanCompany(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return c, nil
}

func (r *PostgresRepository) Create(ctx context.Context, company *models.Company) (*models.Company, error) {

	query :=
		`INSERT INTO companies (name, industry, website, email, phone, address, city, state, zip_code, country, description, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		company.Name, company.Industry, company.Website, company.Email, company.Phone,
		company.Address, company.City, company.State, company.ZipCode, company.Country,
		company.Description, company.CreatedBy).
		Scan(&company.ID, &company.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return company, nil
}

func (r *PostgresRepository) Update(ctx context.Context, company *models.Company) error {
	query :=
		`UPDATE companies SET name = $1, industry = $2, website = $3, email = $4, phone = $5,
		        address = $6, city = $7, state = $8, zip_code = $9, country = $10, description = $11
		 WHERE id = $12
		 `

	res, err := r.db.ExecContext(ctx, query,
		company.Name, company.Industry, company.Website, company.Email, company.Phone,
		company.Address, company.City, company.State, company.ZipCode, company.Country,
		company.Description, company.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}
