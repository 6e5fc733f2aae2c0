// Package client is a typed HTTP client for the offers API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Offer mirrors the API's offer representation.
type Offer struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	OriginalPrice   float64   `json:"originalPrice"`
	Discount        float64   `json:"discount"`
	DiscountedPrice float64   `json:"discountedPrice"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// NewOffer is the payload for creating an offer. The server derives the
// discounted price.
type NewOffer struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	OriginalPrice float64 `json:"originalPrice"`
	Discount      float64 `json:"discount"`
}

// OfferPatch is a partial update; nil fields are left unchanged.
type OfferPatch struct {
	Title         *string  `json:"title,omitempty"`
	Description   *string  `json:"description,omitempty"`
	OriginalPrice *float64 `json:"originalPrice,omitempty"`
	Discount      *float64 `json:"discount,omitempty"`
}

// envelope is the body of every API response.
type envelope struct {
	Status string          `json:"status"`
	Msg    string          `json:"msg"`
	Data   json.RawMessage `json:"data,omitempty"`
	Token  string          `json:"token,omitempty"`
}

// Client is the offers API client. Calls are authenticated with the
// session's token; Register and the login calls replace it.
type Client struct {
	baseURL    string
	session    *Session
	httpClient *http.Client
}

// New creates a new API client. baseURL includes the /api prefix.
func New(baseURL string, session *Session) *Client {
	if session == nil {
		session = &Session{}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		session: session,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Session returns the session the client authenticates with.
func (c *Client) Session() *Session {
	return c.session
}

// --- Auth ---

// Register creates an account and signs the session in with it.
func (c *Client) Register(ctx context.Context, email, password, confirmPassword string) error {
	body := map[string]string{"email": email, "password": password, "confirmPassword": confirmPassword}
	env, err := c.do(ctx, http.MethodPost, "/auth/register", body)
	if err != nil {
		return fmt.Errorf("client.Register: %w", err)
	}
	c.session.set(env.Token, false)
	return nil
}

// Login signs the session in as a regular user.
func (c *Client) Login(ctx context.Context, email, password string) error {
	env, err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{"email": email, "password": password})
	if err != nil {
		return fmt.Errorf("client.Login: %w", err)
	}
	c.session.set(env.Token, false)
	return nil
}

// AdminLogin signs the session in with the admin login.
func (c *Client) AdminLogin(ctx context.Context, email, password string) error {
	env, err := c.do(ctx, http.MethodPost, "/admin/login", map[string]string{"email": email, "password": password})
	if err != nil {
		return fmt.Errorf("client.AdminLogin: %w", err)
	}
	c.session.set(env.Token, true)
	return nil
}

// --- User ---

// ListOffers fetches every offer through the user route.
func (c *Client) ListOffers(ctx context.Context) ([]Offer, error) {
	var offers []Offer
	if err := c.call(ctx, http.MethodGet, "/user/getOffers", nil, &offers); err != nil {
		return nil, fmt.Errorf("client.ListOffers: %w", err)
	}
	return offers, nil
}

// BuyOffer asks the server for the offer being bought. Nothing is recorded
// server-side.
func (c *Client) BuyOffer(ctx context.Context, id string) (*Offer, error) {
	var offer Offer
	if err := c.call(ctx, http.MethodPost, "/user/buyOffers", map[string]string{"offerId": id}, &offer); err != nil {
		return nil, fmt.Errorf("client.BuyOffer: %w", err)
	}
	return &offer, nil
}

// --- Admin ---

// AdminListOffers fetches every offer through the admin route.
func (c *Client) AdminListOffers(ctx context.Context) ([]Offer, error) {
	var offers []Offer
	if err := c.call(ctx, http.MethodGet, "/admin/offers", nil, &offers); err != nil {
		return nil, fmt.Errorf("client.AdminListOffers: %w", err)
	}
	return offers, nil
}

// AddOffer creates an offer.
func (c *Client) AddOffer(ctx context.Context, in NewOffer) (*Offer, error) {
	var offer Offer
	if err := c.call(ctx, http.MethodPost, "/admin/addOffers", in, &offer); err != nil {
		return nil, fmt.Errorf("client.AddOffer: %w", err)
	}
	return &offer, nil
}

// UpdateOffer applies patch to the offer with the given id.
func (c *Client) UpdateOffer(ctx context.Context, id string, patch OfferPatch) (*Offer, error) {
	var offer Offer
	if err := c.call(ctx, http.MethodPut, "/admin/updateOffers/"+url.PathEscape(id), patch, &offer); err != nil {
		return nil, fmt.Errorf("client.UpdateOffer: %w", err)
	}
	return &offer, nil
}

// DeleteOffer removes the offer with the given id.
func (c *Client) DeleteOffer(ctx context.Context, id string) error {
	if _, err := c.do(ctx, http.MethodDelete, "/admin/deleteOffers/"+url.PathEscape(id), nil); err != nil {
		return fmt.Errorf("client.DeleteOffer: %w", err)
	}
	return nil
}

// --- Transport ---

// call performs the request and decodes the envelope's data into out.
func (c *Client) call(ctx context.Context, method, path string, body, out any) error {
	env, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*envelope, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.session.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", err)}
	}

	var env envelope
	decodeErr := json.Unmarshal(respBody, &env)

	if resp.StatusCode >= 400 {
		if decodeErr == nil && env.Msg != "" {
			return nil, &HTTPError{StatusCode: resp.StatusCode, Message: env.Msg}
		}
		return nil, &HTTPError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode response: %w", decodeErr)
	}
	return &env, nil
}
