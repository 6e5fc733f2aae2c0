package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/offerhub/offers-api/pkg/client"
)

// offersLoadedMsg carries a fresh offer list for either view.
type offersLoadedMsg struct {
	offers []client.Offer
	err    error
}

type boughtMsg struct {
	id    string
	offer *client.Offer
	err   error
}

type copyResultMsg struct {
	err error
}

// offersModel is the shopper's listing. Bought offers are tracked in memory
// only and forgotten when the program exits.
type offersModel struct {
	client  *client.Client
	offers  []client.Offer
	cursor  int
	bought  map[string]bool
	loading bool
	height  int
}

func newOffersModel(c *client.Client) offersModel {
	return offersModel{client: c, bought: make(map[string]bool)}
}

func (m offersModel) Init() tea.Cmd {
	return m.load()
}

func (m offersModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		offers, err := c.ListOffers(context.Background())
		return offersLoadedMsg{offers: offers, err: err}
	}
}

func (m offersModel) Update(msg tea.Msg) (offersModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height

	case offersLoadedMsg:
		m.loading = false
		if msg.err != nil {
			return m, flashErr(client.Message(msg.err))
		}
		m.offers = msg.offers
		m.cursor = clampCursor(m.cursor, len(m.offers))

	case boughtMsg:
		if msg.err != nil {
			return m, flashErr(client.Message(msg.err))
		}
		m.bought[msg.id] = true
		return m, flash(fmt.Sprintf("Bought %s for %s", msg.offer.Title, formatPrice(msg.offer.DiscountedPrice)))

	case copyResultMsg:
		if msg.err != nil {
			return m, flashErr("copy failed: " + msg.err.Error())
		}
		return m, flash("Offer id copied")

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m offersModel) updateKeys(msg tea.KeyMsg) (offersModel, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.offers)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "r":
		m.loading = true
		return m, m.load()
	case "b", "enter":
		if m.cursor < len(m.offers) {
			offer := m.offers[m.cursor]
			if m.bought[offer.ID] {
				return m, flash("Already bought")
			}
			c := m.client
			return m, func() tea.Msg {
				got, err := c.BuyOffer(context.Background(), offer.ID)
				return boughtMsg{id: offer.ID, offer: got, err: err}
			}
		}
	case "c":
		if m.cursor < len(m.offers) {
			id := m.offers[m.cursor].ID
			return m, func() tea.Msg {
				return copyResultMsg{err: clipboard.WriteAll(id)}
			}
		}
	}
	return m, nil
}

func (m offersModel) View() string {
	if m.loading && len(m.offers) == 0 {
		return dimStyle.Render("  loading offers...")
	}
	if len(m.offers) == 0 {
		return dimStyle.Render("  no offers yet")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Offers") + "\n\n")
	for i, o := range m.offers {
		b.WriteString(renderOfferRow(o, i == m.cursor, m.bought[o.ID]) + "\n")
	}
	return b.String()
}

func (m offersModel) helpKeys() string {
	return helpEntry("j/k", "nav") + "  " + helpEntry("b", "buy") + "  " + helpEntry("c", "copy id") + "  " +
		helpEntry("r", "reload") + "  " + helpEntry("ctrl+o", "logout") + "  " + helpEntry("q", "quit")
}

// renderOfferRow renders one offer line shared by the user and admin views.
func renderOfferRow(o client.Offer, selected, bought bool) string {
	cursor := "  "
	title := normalStyle.Render(truncStr(o.Title, 32))
	if selected {
		cursor = accentStyle.Render("› ")
		title = selectedStyle.Render(truncStr(o.Title, 32))
	}

	price := priceStyle.Render(formatPrice(o.DiscountedPrice))
	if o.Discount > 0 {
		price = strikeStyle.Render(formatPrice(o.OriginalPrice)) + " " + price + " " +
			discountStyle.Render("-"+formatDiscount(o.Discount))
	}

	row := cursor + title + "  " + price
	if bought {
		row += "  " + boughtStyle.Render("✓ bought")
	}
	if selected {
		row = selectedRowBg.Render(row)
		if o.Description != "" {
			row += "\n    " + dimStyle.Render(truncStr(o.Description, 72))
		}
	}
	return row
}

func clampCursor(cursor, n int) int {
	if cursor >= n {
		cursor = n - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}
