package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/phonebook/internal/common"
	"github.com/dmitrijs2005/phonebook/internal/models"
	"github.com/dmitrijs2005/phonebook/internal/server/repositories/companies"
	"github.com/dmitrijs2005/phonebook/internal/server/repositories/contacts"
	"github.com/dmitrijs2005/phonebook/internal/server/repositories/notices"
	"github.com/dmitrijs2005/phonebook/internal/server/repositories/users"
)

// MemoryManager keeps all records in process memory. It exists for tests and
// local experiments; nothing is persisted.
type MemoryManager struct {
	users     *memoryUsers
	contacts  *memoryContacts
	companies *memoryCompanies
	notices   *memoryNotices
}

func NewMemoryManager() *MemoryManager {
	companyRepo := &memoryCompanies{items: map[int64]models.Company{}}
	return &MemoryManager{
		users:     &memoryUsers{items: map[int64]users.User{}},
		contacts:  &memoryContacts{items: map[int64]models.Contact{}, companies: companyRepo},
		companies: companyRepo,
		notices:   &memoryNotices{items: map[int64]models.Notice{}},
	}
}

func (m *MemoryManager) Users() users.Repository         { return m.users }
func (m *MemoryManager) Contacts() contacts.Repository   { return m.contacts }
func (m *MemoryManager) Companies() companies.Repository { return m.companies }
func (m *MemoryManager) Notices() notices.Repository     { return m.notices }
func (m *MemoryManager) Close() error                    { return nil }

type memoryUsers struct {
	mu     sync.Mutex
	items  map[int64]users.User
	nextID int64
}

func (r *memoryUsers) Create(_ context.Context, user *users.User) (*users.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	r.items[user.ID] = *user
	return user, nil
}

func (r *memoryUsers) GetByID(_ context.Context, id int64) (*users.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (r *memoryUsers) GetByUsername(_ context.Context, username string) (*users.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.items {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memoryUsers) GetByEmail(_ context.Context, email string) (*users.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.items {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memoryUsers) List(_ context.Context) ([]users.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]users.User, 0, len(r.items))
	for _, u := range r.items {
		result = append(result, u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *memoryUsers) Update(_ context.Context, user *users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[user.ID]; !ok {
		return common.ErrorNotFound
	}
	r.items[user.ID] = *user
	return nil
}

func (r *memoryUsers) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *memoryUsers) CountAdmins(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, u := range r.items {
		if u.Role == models.RoleAdmin {
			count++
		}
	}
	return count, nil
}

type memoryContacts struct {
	mu        sync.Mutex
	items     map[int64]models.Contact
	nextID    int64
	companies *memoryCompanies
}

func matchesSearch(c *models.Contact, search string) bool {
	if search == "" {
		return true
	}
	s := strings.ToLower(search)
	return strings.Contains(strings.ToLower(c.FirstName), s) ||
		strings.Contains(strings.ToLower(c.LastName), s) ||
		strings.Contains(strings.ToLower(c.Email), s)
}

func (r *memoryContacts) List(_ context.Context, p contacts.ListParams) ([]models.Contact, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var all []models.Contact
	for _, c := range r.items {
		if !matchesSearch(&c, p.Search) {
			continue
		}
		if p.CompanyID != 0 && (c.CompanyID == nil || *c.CompanyID != p.CompanyID) {
			continue
		}
		all = append(all, r.withCompany(c))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := len(all)
	start := (p.Page - 1) * p.PerPage
	if start > total {
		start = total
	}
	end := start + p.PerPage
	if end > total {
		end = total
	}

	return all[start:end], total, nil
}

// withCompany fills the joined summary the SQL backend produces.
func (r *memoryContacts) withCompany(c models.Contact) models.Contact {
	c.Company = nil
	if c.CompanyID != nil && r.companies != nil {
		if co, ok := r.companies.get(*c.CompanyID); ok {
			c.Company = &models.CompanyRef{ID: co.ID, Name: co.Name}
		}
	}
	return c
}

func (r *memoryContacts) GetByID(_ context.Context, id int64) (*models.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c = r.withCompany(c)
	return &c, nil
}

func (r *memoryContacts) Create(_ context.Context, contact *models.Contact) (*models.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	contact.ID = r.nextID
	contact.CreatedAt = time.Now()
	r.items[contact.ID] = *contact
	return contact, nil
}

func (r *memoryContacts) Update(_ context.Context, contact *models.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[contact.ID]
	if !ok {
		return common.ErrorNotFound
	}
	contact.CreatedAt = existing.CreatedAt
	contact.CreatedBy = existing.CreatedBy
	r.items[contact.ID] = *contact
	return nil
}

func (r *memoryContacts) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.items, id)
	return nil
}

type memoryCompanies struct {
	mu     sync.Mutex
	items  map[int64]models.Company
	nextID int64
}

func (r *memoryCompanies) get(id int64) (models.Company, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	return c, ok
}

func (r *memoryCompanies) List(_ context.Context) ([]models.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]models.Company, 0, len(r.items))
	for _, c := range r.items {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *memoryCompanies) GetByID(_ context.Context, id int64) (*models.Company, error) {
	c, ok := r.get(id)
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &c, nil
}

func (r *memoryCompanies) Create(_ context.Context, company *models.Company) (*models.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	company.ID = r.nextID
	company.CreatedAt = time.Now()
	r.items[company.ID] = *company
	return company, nil
}

func (r *memoryCompanies) Update(_ context.Context, company *models.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[company.ID]
	if !ok {
		return common.ErrorNotFound
	}
	company.CreatedAt = existing.CreatedAt
	company.CreatedBy = existing.CreatedBy
	r.items[company.ID] = *company
	return nil
}

func (r *memoryCompanies) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.items, id)
	return nil
}

type memoryNotices struct {
	mu     sync.Mutex
	items  map[int64]models.Notice
	nextID int64
}

func (r *memoryNotices) List(_ context.Context) ([]models.Notice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]models.Notice, 0, len(r.items))
	for _, n := range r.items {
		result = append(result, n)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *memoryNotices) GetByID(_ context.Context, id int64) (*models.Notice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &n, nil
}

func (r *memoryNotices) Create(_ context.Context, notice *models.Notice) (*models.Notice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	notice.ID = r.nextID
	notice.CreatedAt = time.Now()
	notice.UpdatedAt = notice.CreatedAt
	r.items[notice.ID] = *notice
	return notice, nil
}

func (r *memoryNotices) Update(_ context.Context, notice *models.Notice) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[notice.ID]
	if !ok {
		return common.ErrorNotFound
	}
	notice.CreatedAt = existing.CreatedAt
	notice.CreatedBy = existing.CreatedBy
	notice.UpdatedAt = time.Now()
	r.items[notice.ID] = *notice
	return nil
}

func (r *memoryNotices) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.items, id)
	return nil
}
