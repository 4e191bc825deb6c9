// Package store wires the repositories behind a single manager so the HTTP
// layer depends on one seam. The PostgreSQL manager is the production
// backend; the memory manager backs handler tests.
package store

import (
	"github.com/dmitrijs2005/phonebook/internal/server/repositories/companies"
	"github.com/dmitrijs2005/phonebook/internal/server/repositories/contacts"
	"github.com/dmitrijs2005/phonebook/internal/server/repositories/notices"
	"github.com/dmitrijs2005/phonebook/internal/server/repositories/users"
)

type Manager interface {
	Users() users.Repository
	Contacts() contacts.Repository
	Companies() companies.Repository
	Notices() notices.Repository
	Close() error
}
