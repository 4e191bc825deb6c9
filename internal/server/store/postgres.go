package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/phonebook/internal/server/migrations"
	"github.com/dmitrijs2005/phonebook/internal/server/repositories/companies"
	"github.com/dmitrijs2005/phonebook/internal/server/repositories/contacts"
	"github.com/dmitrijs2005/phonebook/internal/server/repositories/notices"
	"github.com/dmitrijs2005/phonebook/internal/server/repositories/users"
)

type PostgresManager struct {
	db        *sql.DB
	users     users.Repository
	contacts  contacts.Repository
	companies companies.Repository
	notices   notices.Repository
}

func (m *PostgresManager) Users() users.Repository         { return m.users }
func (m *PostgresManager) Contacts() contacts.Repository   { return m.contacts }
func (m *PostgresManager) Companies() companies.Repository { return m.companies }
func (m *PostgresManager) Notices() notices.Repository     { return m.notices }

func (m *PostgresManager) Close() error {
	return m.db.Close()
}

func (m *PostgresManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return err
	}

	return nil
}

func NewPostgresManager(dsn string) (*PostgresManager, error) {

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	m := &PostgresManager{
		db:        db,
		users:     users.NewPostgresRepository(db),
		contacts:  contacts.NewPostgresRepository(db),
		companies: companies.NewPostgresRepository(db),
		notices:   notices.NewPostgresRepository(db),
	}

	if err := m.RunMigrations(context.Background()); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}
