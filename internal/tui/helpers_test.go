package tui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/offerhub/offers-api/pkg/client"
)

// drain runs cmd and any batched commands, returning every produced message.
// Never pass it an App-level command: banner ticks would block for bannerTTL.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+o":
		return tea.KeyMsg{Type: tea.KeyCtrlO}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+t":
		return tea.KeyMsg{Type: tea.KeyCtrlT}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(m authModel, text string) authModel {
	for _, r := range text {
		m, _ = m.Update(key(string(r)))
	}
	return m
}

func writeEnvelope(w http.ResponseWriter, code int, env map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(env) //nolint:errcheck
}

// fakeAPI serves a fixed offer list and fails deletes with 404.
func fakeAPI(t *testing.T) *client.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/admin/offers" || r.URL.Path == "/user/getOffers":
			writeEnvelope(w, http.StatusOK, map[string]any{
				"status": "success", "msg": "Offers fetched successfully",
				"data": []map[string]any{
					{"id": "o1", "title": "Laptop", "originalPrice": 1000, "discount": 15, "discountedPrice": 850},
					{"id": "o2", "title": "Bike", "originalPrice": 200, "discount": 0, "discountedPrice": 200},
				},
			})
		case r.URL.Path == "/user/buyOffers":
			writeEnvelope(w, http.StatusOK, map[string]any{
				"status": "success", "msg": "Offer retrieved successfully",
				"data": map[string]any{"id": "o1", "title": "Laptop", "discountedPrice": 850},
			})
		case r.URL.Path == "/auth/login":
			writeEnvelope(w, http.StatusOK, map[string]any{"status": "success", "msg": "Login successful", "token": "tok"})
		case r.Method == http.MethodDelete:
			writeEnvelope(w, http.StatusNotFound, map[string]any{"status": "fail", "msg": "Offer not found"})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return client.New(srv.URL, client.NewSession("tok", false))
}
