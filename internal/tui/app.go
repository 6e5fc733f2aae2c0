// Package tui is the terminal client for the offers marketplace.
package tui

import (
	"fmt"
	"net/http"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/offerhub/offers-api/pkg/client"
)

type view int

const (
	viewAuth view = iota
	viewOffers
	viewAdmin
)

// App is the root Bubbletea model.
type App struct {
	client      *client.Client
	sessionPath string // empty disables persistence
	view        view
	auth        authModel
	offers      offersModel
	admin       adminModel
	banner      banner
	width       int
	height      int
}

// NewApp creates the TUI. A signed-in session starts on the matching
// listing; otherwise the sign-in screen is shown.
func NewApp(c *client.Client, sessionPath string) App {
	a := App{
		client:      c,
		sessionPath: sessionPath,
		auth:        newAuthModel(c),
		offers:      newOffersModel(c),
		admin:       newAdminModel(c),
	}
	a.view = a.landingView()
	return a
}

func (a App) landingView() view {
	s := a.client.Session()
	switch {
	case !s.SignedIn():
		return viewAuth
	case s.Admin():
		return viewAdmin
	default:
		return viewOffers
	}
}

func (a App) Init() tea.Cmd {
	return a.initView()
}

func (a App) initView() tea.Cmd {
	switch a.view {
	case viewOffers:
		return a.offers.Init()
	case viewAdmin:
		return a.admin.Init()
	}
	return nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + banner(1) + help(1)
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 4}
		a.offers, _ = a.offers.Update(bodyMsg)
		a.admin, _ = a.admin.Update(bodyMsg)
		return a, nil

	case bannerMsg:
		return a, a.banner.show(msg)

	case bannerClearMsg:
		a.banner.clear(msg)
		return a, nil

	case authDoneMsg:
		var cmd tea.Cmd
		a.auth, cmd = a.auth.Update(msg)
		if msg.err != nil {
			return a, cmd
		}
		a.view = a.landingView()
		a.auth = newAuthModel(a.client)
		return a, tea.Batch(a.persist(), flash("Signed in"), a.initView())

	case offersLoadedMsg:
		if client.IsStatus(msg.err, http.StatusUnauthorized) {
			return a.signOut("Session expired, please sign in again")
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "q":
			if !a.isEditing() {
				return a, tea.Quit
			}
		case "ctrl+o":
			if a.view != viewAuth {
				return a.signOut("Signed out")
			}
		}
	}

	var cmd tea.Cmd
	switch a.view {
	case viewAuth:
		a.auth, cmd = a.auth.Update(msg)
	case viewOffers:
		a.offers, cmd = a.offers.Update(msg)
	case viewAdmin:
		a.admin, cmd = a.admin.Update(msg)
	}
	return a, cmd
}

// isEditing reports whether printable keys belong to a text input.
func (a App) isEditing() bool {
	switch a.view {
	case viewAuth:
		return true
	case viewAdmin:
		return a.admin.editing()
	}
	return false
}

func (a App) signOut(reason string) (App, tea.Cmd) {
	a.client.Session().Clear()
	a.view = viewAuth
	a.auth = newAuthModel(a.client)
	a.offers = newOffersModel(a.client)
	a.admin = newAdminModel(a.client)
	return a, tea.Batch(a.persist(), flash(reason))
}

// persist writes the session file in the background.
func (a App) persist() tea.Cmd {
	if a.sessionPath == "" {
		return nil
	}
	s, path := a.client.Session(), a.sessionPath
	return func() tea.Msg {
		if err := s.Save(path); err != nil {
			return bannerMsg{text: err.Error(), isErr: true}
		}
		return nil
	}
}

func (a App) View() string {
	role := "signed out"
	switch a.view {
	case viewOffers:
		role = "shopper"
	case viewAdmin:
		role = "admin"
	}
	header := titleStyle.Render("OFFERS") + "  " + metaStyle.Render(role)

	var body, help string
	switch a.view {
	case viewAuth:
		body, help = a.auth.View(), a.auth.helpKeys()
	case viewOffers:
		body, help = a.offers.View(), a.offers.helpKeys()
	case viewAdmin:
		body, help = a.admin.View(), a.admin.helpKeys()
	}

	if a.width > 0 {
		body = lipgloss.NewStyle().MaxWidth(a.width).Render(body)
	}
	if a.height > 4 {
		body = truncateLines(body, a.height-4)
	}

	return fmt.Sprintf("%s\n\n%s\n%s\n %s", header, strings.TrimRight(body, "\n"), a.banner.View(), help)
}

// truncateLines keeps at most n lines of s.
func truncateLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[:n], "\n")
}
