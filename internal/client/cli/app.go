// Package cli implements the interactive terminal client for the phonebook
// admin panel: a REPL over the REST API with role-gated commands.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/phonebook/internal/authz"
	"github.com/dmitrijs2005/phonebook/internal/client/api"
	"github.com/dmitrijs2005/phonebook/internal/client/config"
	"github.com/dmitrijs2005/phonebook/internal/client/controller"
	"github.com/dmitrijs2005/phonebook/internal/client/dashboard"
	"github.com/dmitrijs2005/phonebook/internal/client/resources"
	"github.com/dmitrijs2005/phonebook/internal/client/session"
	"github.com/dmitrijs2005/phonebook/internal/models"
)

// App wires the API client, the session service and one controller per
// resource type behind the REPL commands.
type App struct {
	config *config.Config
	auth   *session.Service

	contacts  *controller.Controller[models.Contact]
	companies *controller.Controller[models.Company]
	notices   *controller.Controller[models.Notice]
	users     *controller.Controller[models.User]
	dash      *dashboard.Service

	reader *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	apiClient, err := api.New(c.ServerBaseURL)
	if err != nil {
		return nil, err
	}

	return &App{
		config:    c,
		auth:      session.NewService(apiClient),
		contacts:  controller.New(resources.Contacts(), apiClient.Contacts()),
		companies: controller.New(resources.Companies(), apiClient.Companies()),
		notices:   controller.New(resources.Notices(), apiClient.Notices()),
		users:     controller.New(resources.Users(), apiClient.Users()),
		dash: dashboard.NewService(
			apiClient.Contacts(), apiClient.Companies(), apiClient.Notices(), apiClient.Users()),
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

// Run probes the existing session, then hands control to the REPL.
func (a *App) Run(ctx context.Context) {
	fmt.Println("Phonebook CLI (type 'help' for commands)")

	a.auth.CheckStatus(ctx)
	if !a.isLoggedIn() {
		_ = a.Login(ctx)
	}

	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}

func (a *App) isLoggedIn() bool {
	return a.auth.Session().LoggedIn()
}

func (a *App) role() models.Role {
	return a.auth.Session().Role()
}

func (a *App) canMutate() bool {
	return a.isLoggedIn() && authz.CanMutate(a.role())
}

func (a *App) canManageUsers() bool {
	return a.isLoggedIn() && authz.CanManageUsers(a.role())
}

// status renders the prompt decoration: the signed-in identity and role.
func (a *App) status() string {
	s := a.auth.Session()
	if !s.LoggedIn() {
		return ""
	}
	return fmt.Sprintf("(%s %s)", s.User().Username, s.Role())
}

// confirm asks a yes/no question before an irreversible action. Anything but
// an explicit yes declines.
func (a *App) confirm(prompt string) bool {
	answer, err := GetSimpleText(a.reader, prompt+" (y/N)", os.Stdout)
	if err != nil {
		return false
	}
	return answer == "y" || answer == "yes"
}
