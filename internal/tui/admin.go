package tui

import (
	"context"
	"errors"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/offerhub/offers-api/internal/core/domain"
	"github.com/offerhub/offers-api/pkg/client"
)

type formField int

const (
	formTitle formField = iota
	formDescription
	formPrice
	formDiscount
	numFormFields
)

var formLabels = [numFormFields]string{"Title", "Description", "Price", "Discount %"}

type offerSavedMsg struct {
	offer   *client.Offer
	created bool
	err     error
}

type offerDeletedMsg struct {
	id  string
	err error
}

// offerForm edits a new offer (editing == nil) or an existing one.
type offerForm struct {
	fields  [numFormFields]string
	focus   formField
	editing *client.Offer
}

func newOfferForm(o *client.Offer) offerForm {
	f := offerForm{editing: o}
	if o != nil {
		f.fields[formTitle] = o.Title
		f.fields[formDescription] = o.Description
		f.fields[formPrice] = formatNumber(o.OriginalPrice)
		f.fields[formDiscount] = formatNumber(o.Discount)
	}
	return f
}

// newOffer validates the form for creation.
func (f offerForm) newOffer() (client.NewOffer, error) {
	title := strings.TrimSpace(f.fields[formTitle])
	desc := strings.TrimSpace(f.fields[formDescription])
	if title == "" || desc == "" {
		return client.NewOffer{}, errors.New("title and description are required")
	}
	price, err := parseAmount("price", f.fields[formPrice])
	if err != nil {
		return client.NewOffer{}, err
	}
	discount := 0.0
	if strings.TrimSpace(f.fields[formDiscount]) != "" {
		if discount, err = parseAmount("discount", f.fields[formDiscount]); err != nil {
			return client.NewOffer{}, err
		}
	}
	return client.NewOffer{Title: title, Description: desc, OriginalPrice: price, Discount: discount}, nil
}

// patch returns only the fields that differ from the offer being edited.
func (f offerForm) patch() (client.OfferPatch, bool, error) {
	var p client.OfferPatch
	o := f.editing

	if title := strings.TrimSpace(f.fields[formTitle]); title != o.Title {
		if title == "" {
			return p, false, errors.New("title cannot be empty")
		}
		p.Title = &title
	}
	if desc := strings.TrimSpace(f.fields[formDescription]); desc != o.Description {
		if desc == "" {
			return p, false, errors.New("description cannot be empty")
		}
		p.Description = &desc
	}
	price, err := parseAmount("price", f.fields[formPrice])
	if err != nil {
		return p, false, err
	}
	if price != o.OriginalPrice {
		p.OriginalPrice = &price
	}
	discount, err := parseAmount("discount", f.fields[formDiscount])
	if err != nil {
		return p, false, err
	}
	if discount != o.Discount {
		p.Discount = &discount
	}

	changed := p.Title != nil || p.Description != nil || p.OriginalPrice != nil || p.Discount != nil
	return p, changed, nil
}

// adminModel is the offer management dashboard.
type adminModel struct {
	client  *client.Client
	offers  []client.Offer
	cursor  int
	loading bool
	form    *offerForm
	height  int
}

func newAdminModel(c *client.Client) adminModel {
	return adminModel{client: c}
}

func (m adminModel) Init() tea.Cmd {
	return m.load()
}

func (m adminModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		offers, err := c.AdminListOffers(context.Background())
		return offersLoadedMsg{offers: offers, err: err}
	}
}

// editing reports whether the form captures keystrokes.
func (m adminModel) editing() bool {
	return m.form != nil
}

func (m adminModel) Update(msg tea.Msg) (adminModel, tea.Cmd) {
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

	case offerSavedMsg:
		if msg.err != nil {
			return m, flashErr(client.Message(msg.err))
		}
		m.form = nil
		if msg.created {
			m.offers = append(m.offers, *msg.offer)
			m.cursor = len(m.offers) - 1
			return m, flash("Offer created")
		}
		for i := range m.offers {
			if m.offers[i].ID == msg.offer.ID {
				m.offers[i] = *msg.offer
			}
		}
		return m, flash("Offer updated")

	case offerDeletedMsg:
		if msg.err != nil {
			// The row was removed optimistically; resync with the server.
			m.loading = true
			return m, tea.Batch(flashErr(client.Message(msg.err)), m.load())
		}
		return m, flash("Offer deleted")

	case tea.KeyMsg:
		if m.form != nil {
			return m.updateForm(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m adminModel) updateKeys(msg tea.KeyMsg) (adminModel, tea.Cmd) {
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
	case "a":
		f := newOfferForm(nil)
		m.form = &f
	case "e", "enter":
		if m.cursor < len(m.offers) {
			o := m.offers[m.cursor]
			f := newOfferForm(&o)
			m.form = &f
		}
	case "d":
		if m.cursor < len(m.offers) {
			id := m.offers[m.cursor].ID
			m.offers = append(m.offers[:m.cursor:m.cursor], m.offers[m.cursor+1:]...)
			m.cursor = clampCursor(m.cursor, len(m.offers))
			c := m.client
			return m, func() tea.Msg {
				return offerDeletedMsg{id: id, err: c.DeleteOffer(context.Background(), id)}
			}
		}
	}
	return m, nil
}

func (m adminModel) updateForm(msg tea.KeyMsg) (adminModel, tea.Cmd) {
	f := *m.form
	switch key := msg.String(); key {
	case "esc":
		m.form = nil
		return m, nil
	case "tab", "down":
		f.focus = (f.focus + 1) % numFormFields
	case "shift+tab", "up":
		f.focus = (f.focus - 1 + numFormFields) % numFormFields
	case "enter", "ctrl+s":
		if key == "enter" && f.focus < numFormFields-1 {
			f.focus++
			break
		}
		m.form = &f
		return m.submit()
	default:
		f.fields[f.focus] = editRune(f.fields[f.focus], key)
	}
	m.form = &f
	return m, nil
}

func (m adminModel) submit() (adminModel, tea.Cmd) {
	c, f := m.client, *m.form

	if f.editing == nil {
		in, err := f.newOffer()
		if err != nil {
			return m, flashErr(err.Error())
		}
		return m, func() tea.Msg {
			offer, err := c.AddOffer(context.Background(), in)
			return offerSavedMsg{offer: offer, created: true, err: err}
		}
	}

	patch, changed, err := f.patch()
	if err != nil {
		return m, flashErr(err.Error())
	}
	if !changed {
		m.form = nil
		return m, flash("Nothing to update")
	}
	id := f.editing.ID
	return m, func() tea.Msg {
		offer, err := c.UpdateOffer(context.Background(), id, patch)
		return offerSavedMsg{offer: offer, err: err}
	}
}

func (m adminModel) View() string {
	if m.form != nil {
		return m.formView()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Manage offers") + "  " + metaStyle.Render(pluralOffers(len(m.offers))) + "\n\n")
	if m.loading && len(m.offers) == 0 {
		b.WriteString(dimStyle.Render("  loading offers..."))
		return b.String()
	}
	if len(m.offers) == 0 {
		b.WriteString(dimStyle.Render("  no offers yet, press a to add one"))
		return b.String()
	}
	for i, o := range m.offers {
		b.WriteString(renderOfferRow(o, i == m.cursor, false) + "\n")
	}
	return b.String()
}

func (m adminModel) formView() string {
	f := m.form
	heading := "New offer"
	if f.editing != nil {
		heading = "Edit offer " + metaStyle.Render(f.editing.ID)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(heading) + "\n\n")
	for i := formField(0); i < numFormFields; i++ {
		cursor := " "
		style := normalStyle
		if f.focus == i {
			cursor = accentStyle.Render("›")
			style = selectedStyle
		}
		b.WriteString(cursor + " " + labelStyle.Render(formLabels[i]) + style.Render(f.fields[i]) + "\n")
	}

	if f.editing == nil {
		price, perr := parseAmount("price", f.fields[formPrice])
		discount, derr := parseAmount("discount", f.fields[formDiscount])
		if strings.TrimSpace(f.fields[formDiscount]) == "" {
			discount, derr = 0, nil
		}
		if perr == nil && derr == nil {
			preview := domain.ComputeDiscountedPrice(price, discount)
			b.WriteString("\n" + dimStyle.Render("customers pay ") + priceStyle.Render(formatPrice(preview)))
		}
	}
	return b.String()
}

func (m adminModel) helpKeys() string {
	if m.form != nil {
		return helpEntry("tab", "next") + "  " + helpEntry("ctrl+s", "save") + "  " + helpEntry("esc", "cancel")
	}
	return helpEntry("j/k", "nav") + "  " + helpEntry("a", "add") + "  " + helpEntry("e", "edit") + "  " +
		helpEntry("d", "delete") + "  " + helpEntry("r", "reload") + "  " + helpEntry("ctrl+o", "logout") + "  " +
		helpEntry("q", "quit")
}

func pluralOffers(n int) string {
	if n == 1 {
		return "1 offer"
	}
	return strconv.Itoa(n) + " offers"
}
