package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/phonebook/internal/client/controller"
)

// List fetches and renders one resource collection. A trailing argument list
// on the contacts command is a search submission, which resets pagination to
// the first page.
func (a *App) List(ctx context.Context, resource string, args []string) error {
	switch resource {
	case "contacts":
		if len(args) > 0 {
			a.contacts.Search(ctx, strings.Join(args, " "))
		} else {
			a.contacts.Refresh(ctx)
		}
		fmt.Println(renderContacts(a.contacts.Items(), a.contacts.Pagination()))
	case "companies":
		a.companies.Refresh(ctx)
		fmt.Println(renderCompanies(a.companies.Items()))
	case "notices":
		a.notices.Refresh(ctx)
		fmt.Println(renderNotices(a.notices.Items()))
	case "users":
		a.users.Refresh(ctx)
		fmt.Println(renderUsers(a.users.Items(), a.auth.Session().User().ID))
	default:
		fmt.Println("Unknown resource:", resource)
	}
	return nil
}

// NextPage and PrevPage page through the contacts list, the only paginated
// collection.
func (a *App) NextPage(ctx context.Context) error {
	a.contacts.NextPage(ctx)
	fmt.Println(renderContacts(a.contacts.Items(), a.contacts.Pagination()))
	return nil
}

func (a *App) PrevPage(ctx context.Context) error {
	a.contacts.PrevPage(ctx)
	fmt.Println(renderContacts(a.contacts.Items(), a.contacts.Pagination()))
	return nil
}

func (a *App) Add(ctx context.Context, resource string) error {
	switch resource {
	case "contact":
		a.contacts.OpenCreate()
		return runForm(ctx, a, a.contacts)
	case "company":
		a.companies.OpenCreate()
		return runForm(ctx, a, a.companies)
	case "notice":
		a.notices.OpenCreate()
		return runForm(ctx, a, a.notices)
	case "user":
		a.users.OpenCreate()
		return runForm(ctx, a, a.users)
	}
	fmt.Println("Unknown resource:", resource)
	return nil
}

func (a *App) Edit(ctx context.Context, resource, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		fmt.Println(err)
		return nil
	}

	switch resource {
	case "contact":
		return editRecord(ctx, a, a.contacts, id)
	case "company":
		return editRecord(ctx, a, a.companies, id)
	case "notice":
		return editRecord(ctx, a, a.notices, id)
	case "user":
		return editRecord(ctx, a, a.users, id)
	}
	fmt.Println("Unknown resource:", resource)
	return nil
}

func (a *App) DeleteRecord(ctx context.Context, resource, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		fmt.Println(err)
		return nil
	}

	switch resource {
	case "contact":
		return deleteRecord(ctx, a, a.contacts, id)
	case "company":
		return deleteRecord(ctx, a, a.companies, id)
	case "notice":
		return deleteRecord(ctx, a, a.notices, id)
	case "user":
		// Deleting your own account is never offered, whatever the role.
		if id == a.auth.Session().User().ID {
			fmt.Println("You cannot delete your own account.")
			return nil
		}
		return deleteRecord(ctx, a, a.users, id)
	}
	fmt.Println("Unknown resource:", resource)
	return nil
}

// Toggle flips the is_active flag of a notice or a user.
func (a *App) Toggle(ctx context.Context, resource, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		fmt.Println(err)
		return nil
	}

	switch resource {
	case "notice":
		rec, found := findRecord(a.notices, id)
		if !found {
			fmt.Println("Record not found in the current list. Run 'notices' first.")
			return nil
		}
		if err := a.notices.ToggleActive(ctx, id, rec.IsActive); err != nil {
			fmt.Println("Error:", err)
			return nil
		}
		fmt.Println(renderNotices(a.notices.Items()))
	case "user":
		rec, found := findRecord(a.users, id)
		if !found {
			fmt.Println("Record not found in the current list. Run 'users' first.")
			return nil
		}
		if err := a.users.ToggleActive(ctx, id, rec.IsActive); err != nil {
			fmt.Println("Error:", err)
			return nil
		}
		fmt.Println(renderUsers(a.users.Items(), a.auth.Session().User().ID))
	default:
		fmt.Println("Unknown resource:", resource)
	}
	return nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

// findRecord locates a record on the currently loaded page.
func findRecord[T any](c *controller.Controller[T], id int64) (T, bool) {
	for _, rec := range c.Items() {
		if c.Descriptor().ID(rec) == id {
			return rec, true
		}
	}
	var zero T
	return zero, false
}

func editRecord[T any](ctx context.Context, a *App, c *controller.Controller[T], id int64) error {
	rec, found := findRecord(c, id)
	if !found {
		fmt.Printf("Record not found in the current list. Run '%s' first.\n", c.Descriptor().Plural)
		return nil
	}
	c.OpenEdit(rec)
	return runForm(ctx, a, c)
}

func deleteRecord[T any](ctx context.Context, a *App, c *controller.Controller[T], id int64) error {
	if err := c.Delete(ctx, id, a.confirm); err != nil {
		fmt.Println("Error:", err)
	}
	return nil
}

// runForm walks the descriptor fields, prompting for each, then submits.
// When the submit fails, the message is shown and the form stays open, so a
// second add/edit command can resume from the entered values.
func runForm[T any](ctx context.Context, a *App, c *controller.Controller[T]) error {
	for _, f := range c.Descriptor().Fields {
		if err := promptField(a, c, f); err != nil {
			return err
		}
	}

	if err := c.Submit(ctx); err != nil {
		fmt.Println("Error:", err)
		return nil
	}

	fmt.Println("Saved.")
	return nil
}

func promptField[T any](a *App, c *controller.Controller[T], f controller.Field) error {
	if f.Secret {
		pw, err := getPassword(f.Label+": ", os.Stdout)
		if err != nil {
			return err
		}
		c.SetValue(f.Key, string(pw))
		wipe(pw)
		return nil
	}

	for {
		label := f.Label
		if current := c.Value(f.Key); current != "" {
			label = fmt.Sprintf("%s [%s]", f.Label, current)
		}

		var (
			value string
			err   error
		)
		if f.Multiline {
			value, err = GetMultiline(a.reader, label, os.Stdout)
		} else {
			value, err = getSimpleText(a.reader, label, os.Stdout)
		}
		if err != nil {
			return err
		}

		// An empty answer keeps the pre-filled value.
		if value != "" {
			c.SetValue(f.Key, value)
		}
		if f.Required && c.Value(f.Key) == "" {
			fmt.Printf("%s is required\n", f.Label)
			continue
		}
		return nil
	}
}
