// Package dashboard composes the read-only landing view: the most recent
// notices for everyone, and collection counts for administrators.
package dashboard

import (
	"context"
	"log"
	"sync"

	"github.com/dmitrijs2005/phonebook/internal/authz"
	"github.com/dmitrijs2005/phonebook/internal/client/controller"
	"github.com/dmitrijs2005/phonebook/internal/models"
)

// RecentNotices is how many notices the dashboard shows; the server returns
// the full list newest-first and the truncation happens here.
const RecentNotices = 5

// Summary is the aggregated dashboard state. Counts stay zero for non-admin
// sessions and for fan-out requests that failed.
type Summary struct {
	Notices   []models.Notice
	Contacts  int
	Companies int
	Users     int
}

// Service fans out to the list endpoints of the other resources. Each fetch
// fails independently: a failure is logged, leaves its own slice of the
// summary at zero, and never blocks the rest.
type Service struct {
	contacts  controller.Endpoint[models.Contact]
	companies controller.Endpoint[models.Company]
	notices   controller.Endpoint[models.Notice]
	users     controller.Endpoint[models.User]
}

func NewService(
	contacts controller.Endpoint[models.Contact],
	companies controller.Endpoint[models.Company],
	notices controller.Endpoint[models.Notice],
	users controller.Endpoint[models.User],
) *Service {
	return &Service{contacts: contacts, companies: companies, notices: notices, users: users}
}

// Fetch loads the summary for the given role. The count fetches run only for
// administrators, since only they may read the users collection and only
// they see the stat cards.
func (s *Service) Fetch(ctx context.Context, role models.Role) Summary {
	var (
		summary Summary
		mu      sync.Mutex
		wg      sync.WaitGroup
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		notices, _, err := s.notices.List(ctx, controller.Query{})
		if err != nil {
			log.Printf("Error fetching notices: %v", err)
			return
		}
		if len(notices) > RecentNotices {
			notices = notices[:RecentNotices]
		}
		mu.Lock()
		summary.Notices = notices
		mu.Unlock()
	}()

	if authz.CanManageUsers(role) {
		wg.Add(3)
		go func() {
			defer wg.Done()
			items, _, err := s.contacts.List(ctx, controller.Query{})
			if err != nil {
				log.Printf("Error fetching contacts: %v", err)
				return
			}
			mu.Lock()
			summary.Contacts = len(items)
			mu.Unlock()
		}()
		go func() {
			defer wg.Done()
			items, _, err := s.companies.List(ctx, controller.Query{})
			if err != nil {
				log.Printf("Error fetching companies: %v", err)
				return
			}
			mu.Lock()
			summary.Companies = len(items)
			mu.Unlock()
		}()
		go func() {
			defer wg.Done()
			items, _, err := s.users.List(ctx, controller.Query{})
			if err != nil {
				log.Printf("Error fetching users: %v", err)
				return
			}
			mu.Lock()
			summary.Users = len(items)
			mu.Unlock()
		}()
	}

	wg.Wait()
	return summary
}
