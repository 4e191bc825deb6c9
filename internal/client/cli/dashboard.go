package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/phonebook/internal/authz"
)

// Dashboard renders the summary view: the five most recent notices, plus
// collection counts when the caller is an administrator.
func (a *App) Dashboard(ctx context.Context) error {
	summary := a.dash.Fetch(ctx, a.role())

	if authz.CanManageUsers(a.role()) {
		fmt.Println(headerStyle.Render("Totals"))
		fmt.Printf("contacts: %d  companies: %d  users: %d\n\n",
			summary.Contacts, summary.Companies, summary.Users)
	}

	fmt.Println(headerStyle.Render("Recent notices"))
	if len(summary.Notices) == 0 {
		fmt.Println(dimStyle.Render("No notices."))
		return nil
	}
	fmt.Println(renderNotices(summary.Notices))
	return nil
}
