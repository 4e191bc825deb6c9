package contacts

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

const selectContact = `SELECT c.id, c.first_name, c.last_name, c.email, c.phone, c.mobile,
       c.company_id, c.notes, c.created_at, c.created_by, co.name
  FROM contacts c
  LEFT JOIN companies co ON co.id = c.company_id`

func scanContact(row interface{ Scan(...any) error }) (*models.Contact, error) {
	c := &models.Contact{}
	var companyName sql.NullString
	var createdBy sql.NullInt64
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Mobile,
		&c.CompanyID, &c.Notes, &c.CreatedAt, &createdBy, &companyName)
	if err != nil {
		return nil, err
	}
	c.CreatedBy = createdBy.Int64
	if c.CompanyID != nil && companyName.Valid {
		c.Company = &models.CompanyRef{ID: *c.CompanyID, Name: companyName.String}
	}
	return c, nil
}

func (r *PostgresRepository) List(ctx context.Context, p ListParams) ([]models.Contact, int, error) {

	where := ` WHERE 1=1`
	args := []any{}

	if p.Search != "" {
		args = append(args, "%"+p.Search+"%")
		n := len(args)
		where += fmt.Sprintf(` AND (c.first_name ILIKE $%d OR c.last_name ILIKE $%d OR c.email ILIKE $%d)`, n, n, n)
	}
	if p.CompanyID != 0 {
		args = append(args, p.CompanyID)
		where += fmt.Sprintf(` AND c.company_id = $%d`, len(args))
	}

	var total int
	countQuery := `SELECT count(*) FROM contacts c` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	args = append(args, p.PerPage, (p.Page-1)*p.PerPage)
	query := selectContact + where +
		fmt.Sprintf(` ORDER BY c.id LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	return result, total, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Contact, error) {
	row := r.db.QueryRowContext(ctx, selectContact+` WHERE c.id = $1`, id)

	c, err := scanContact(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return c, nil
}

func (r *PostgresRepository) Create(ctx context.Context, contact *models.Contact) (*models.Contact, error) {

	query :=
		`INSERT INTO contacts (first_name, last_name, email, phone, mobile, company_id, notes, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		contact.FirstName, contact.LastName, contact.Email, contact.Phone, contact.Mobile,
		contact.CompanyID, contact.Notes, contact.CreatedBy).
		Scan(&contact.ID, &contact.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return contact, nil
}

func (r *PostgresRepository) Update(ctx context.Context, contact *models.Contact) error {
	query :=
		`UPDATE contacts SET first_name = $1, last_name = $2, email = $3, phone = $4, mobile = $5,
		        company_id = $6, notes = $7
		 WHERE id = $8
		 `

	res, err := r.db.ExecContext(ctx, query,
		contact.FirstName, contact.LastName, contact.Email, contact.Phone, contact.Mobile,
		contact.CompanyID, contact.Notes, contact.ID)
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
	res, err := r.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1`, id)
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
