package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/offerhub/offers-api/internal/tui"
	"github.com/offerhub/offers-api/pkg/client"
)

const defaultAPIURL = "http://localhost:5000/api"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadSession returns the session using precedence: env var > file > signed out.
// A token from OFFERS_TOKEN is not written back to disk.
func loadSession() (*client.Session, string, error) {
	if tok := os.Getenv("OFFERS_TOKEN"); tok != "" {
		return client.NewSession(tok, os.Getenv("OFFERS_ADMIN") == "1"), "", nil
	}
	path, err := client.DefaultSessionPath()
	if err != nil {
		return nil, "", err
	}
	s, err := client.LoadSession(path)
	if err != nil {
		return nil, "", err
	}
	return s, path, nil
}

func run() error {
	apiURL := os.Getenv("OFFERS_API_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "help", "--help", "-h":
			printHelp()
			return nil
		case "logout":
			return runLogout()
		}
	}

	session, path, err := loadSession()
	if err != nil {
		return err
	}

	app := tui.NewApp(client.New(apiURL, session), path)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func runLogout() error {
	path, err := client.DefaultSessionPath()
	if err != nil {
		return err
	}
	if err := (&client.Session{}).Save(path); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}

func printHelp() {
	fmt.Println(`offers - browse and manage discount offers

Usage:
  offers          start the terminal client
  offers logout   forget the saved session
  offers help     show this help

Environment:
  OFFERS_API_URL  API base URL (default ` + defaultAPIURL + `)
  OFFERS_TOKEN    use this token instead of ~/.offers/token
  OFFERS_ADMIN    set to 1 when OFFERS_TOKEN is an admin token`)
}
