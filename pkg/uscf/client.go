package uscf

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ErrMemberNotFound means the US Chess member ID is unknown
var ErrMemberNotFound = errors.New("uscf member not found")

// Client represents a US Chess member service client
type Client struct {
	BaseURL string
	Mock    bool
	client  *http.Client
}

// Member represents a player's US Chess membership record
type Member struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	State         string `json:"state,omitempty"`
	RegularRating *int   `json:"regularRating,omitempty"`
	QuickRating   *int   `json:"quickRating,omitempty"`
	Expired       bool   `json:"expired"`
}

// NewClient creates a new US Chess client. With mock enabled, lookups are
// served locally with deterministic data instead of calling the service.
func NewClient(baseURL string, timeout time.Duration, mock bool) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		BaseURL: baseURL,
		Mock:    mock,
		client:  &http.Client{Timeout: timeout},
	}
}

// LookupMember retrieves one member record by US Chess ID
func (c *Client) LookupMember(ctx context.Context, memberID string) (*Member, error) {
	if memberID == "" {
		return nil, ErrMemberNotFound
	}
	if c.Mock {
		return c.mockLookupMember(memberID)
	}

	endpoint := fmt.Sprintf("%s/members/%s", c.BaseURL, url.PathEscape(memberID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("uscf member lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrMemberNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("uscf member lookup returned status %d", resp.StatusCode)
	}

	var member Member
	if err := json.NewDecoder(resp.Body).Decode(&member); err != nil {
		return nil, fmt.Errorf("failed to decode uscf member response: %w", err)
	}
	return &member, nil
}

// SearchPlayers searches members by name
func (c *Client) SearchPlayers(ctx context.Context, query string) ([]Member, error) {
	if c.Mock {
		return c.mockSearchPlayers(query), nil
	}

	endpoint := fmt.Sprintf("%s/players?q=%s", c.BaseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("uscf player search failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("uscf player search returned status %d", resp.StatusCode)
	}

	var members []Member
	if err := json.NewDecoder(resp.Body).Decode(&members); err != nil {
		return nil, fmt.Errorf("failed to decode uscf search response: %w", err)
	}
	return members, nil
}

// mockLookupMember serves a lookup locally. The rating is derived from the
// member ID so repeated lookups stay consistent.
func (c *Client) mockLookupMember(memberID string) (*Member, error) {
	rating := mockRating(memberID)
	return &Member{
		ID:            memberID,
		Name:          "Test Member " + memberID,
		State:         "TX",
		RegularRating: &rating,
	}, nil
}

// mockSearchPlayers serves a search locally with two stable records
func (c *Client) mockSearchPlayers(query string) []Member {
	first := mockRating(query + "-1")
	second := mockRating(query + "-2")
	return []Member{
		{ID: "12345678", Name: query + " A", State: "TX", RegularRating: &first},
		{ID: "87654321", Name: query + " B", State: "NY", RegularRating: &second},
	}
}

// mockRating maps an arbitrary string onto the 800-2499 rating range
func mockRating(seed string) int {
	if n, err := strconv.Atoi(seed); err == nil {
		return 800 + n%1700
	}
	sum := 0
	for _, r := range seed {
		sum += int(r)
	}
	return 800 + sum%1700
}
