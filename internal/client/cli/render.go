package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrijs2005/phonebook/internal/models"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Faint(true)

	// Priority colors are purely presentational; the levels carry no other
	// semantics.
	priorityStyles = map[models.Priority]lipgloss.Style{
		models.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		models.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		models.PriorityNormal: lipgloss.NewStyle(),
		models.PriorityLow:    lipgloss.NewStyle().Faint(true),
	}
)

func priorityBadge(p models.Priority) string {
	style, found := priorityStyles[p]
	if !found {
		style = priorityStyles[models.PriorityNormal]
	}
	return style.Render(string(p))
}

func table(header []string, rows [][]string) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, headerStyle.Render(strings.Join(header, "\t")))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
	return strings.TrimRight(b.String(), "\n")
}

func renderContacts(items []models.Contact, pg models.Pagination) string {
	rows := make([][]string, 0, len(items))
	for _, c := range items {
		info := make([]string, 0, 3)
		for _, v := range []string{c.Email, c.Phone, c.Mobile} {
			if v != "" {
				info = append(info, v)
			}
		}
		company := "-"
		if c.Company != nil {
			company = c.Company.Name
		}
		rows = append(rows, []string{
			fmt.Sprint(c.ID),
			c.FirstName + " " + c.LastName,
			strings.Join(info, " / "),
			company,
		})
	}

	out := table([]string{"ID", "Name", "Contact info", "Company"}, rows)
	if pg.Pages > 1 || pg.Total > 0 {
		out += "\n" + dimStyle.Render(fmt.Sprintf("Page %d of %d (%d total)", pg.Page, pg.Pages, pg.Total))
	}
	if len(items) == 0 {
		out += "\n" + dimStyle.Render("No contacts found.")
	}
	return out
}

func renderCompanies(items []models.Company) string {
	rows := make([][]string, 0, len(items))
	for _, c := range items {
		rows = append(rows, []string{fmt.Sprint(c.ID), c.Name, c.Industry, c.City, c.Website})
	}
	return table([]string{"ID", "Name", "Industry", "City", "Website"}, rows)
}

func renderNotices(items []models.Notice) string {
	rows := make([][]string, 0, len(items))
	for _, n := range items {
		state := "active"
		if !n.IsActive {
			state = dimStyle.Render("inactive")
		}
		rows = append(rows, []string{
			fmt.Sprint(n.ID),
			priorityBadge(n.Priority),
			n.Title,
			state,
			n.CreatedAt.Format("2006-01-02"),
		})
	}
	return table([]string{"ID", "Priority", "Title", "State", "Created"}, rows)
}

func renderUsers(items []models.User, selfID int64) string {
	rows := make([][]string, 0, len(items))
	for _, u := range items {
		name := u.Username
		if u.ID == selfID {
			name += " " + dimStyle.Render("(you)")
		}
		state := "active"
		if !u.IsActive {
			state = dimStyle.Render("inactive")
		}
		rows = append(rows, []string{fmt.Sprint(u.ID), name, u.Email, string(u.Role), state})
	}
	return table([]string{"ID", "Username", "Email", "Role", "State"}, rows)
}
