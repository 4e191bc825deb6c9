package notices

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

const selectNotice = `SELECT n.id, n.title, n.content, n.priority, n.is_active,
       n.created_at, n.updated_at, u.id, u.username
  FROM notices n
  LEFT JOIN users u ON u.id = n.created_by`

func scanNotice(row interface{ Scan(...any) error }) (*models.Notice, error) {
	n := &models.Notice{}
	var creatorID sql.NullInt64
	var creatorName sql.NullString
	err := row.Scan(&n.ID, &n.Title, &n.Content, &n.Priority, &n.IsActive,
		&n.CreatedAt, &n.UpdatedAt, &creatorID, &creatorName)
	if err != nil {
		return nil, err
	}
	if creatorID.Valid {
		n.CreatedBy = &models.UserRef{ID: creatorID.Int64, Username: creatorName.String}
	}
	return n, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Notice, error) {
	query := selectNotice + ` ORDER BY n.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Notice
	for rows.Next() {
		n, err := scanNotice(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Notice, error) {
	row := r.db.QueryRowContext(ctx, selectNotice+` WHERE n.id = $1`, id)

	n, err := scanNotice(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return n, nil
}

func (r *PostgresRepository) Create(ctx context.Context, notice *models.Notice) (*models.Notice, error) {

	query :=
		`INSERT INTO notices (title, content, priority, is_active, created_by)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at
		 `

	var creatorID *int64
	if notice.CreatedBy != nil {
		creatorID = &notice.CreatedBy.ID
	}

	err := r.db.QueryRowContext(ctx, query,
		notice.Title, notice.Content, notice.Priority, notice.IsActive, creatorID).
		Scan(&notice.ID, &notice.CreatedAt, &notice.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return notice, nil
}

func (r *PostgresRepository) Update(ctx context.Context, notice *models.Notice) error {
	query :=
		`UPDATE notices SET title = $1, content = $2, priority = $3, is_active = $4, updated_at = now()
		 WHERE id = $5
		 `

	res, err := r.db.ExecContext(ctx, query,
		notice.Title, notice.Content, notice.Priority, notice.IsActive, notice.ID)
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
	res, err := r.db.ExecContext(ctx, `DELETE FROM notices WHERE id = $1`, id)
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
