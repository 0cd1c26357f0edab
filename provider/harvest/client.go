/*
Package harvest is the time-tracking provider client.

PURPOSE:
  Talks to a Harvest-compatible time-entries API. The engine never sees
  this package: callers fetch logged hours here and hand the engine an
  already-resolved slice of entries. All transport and authentication
  failures surface as errors wrapping ErrProvider so callers can map
  them separately from engine input errors.

AUTH:
  Harvest uses a personal access token plus an account id header. The
  token rides on an oauth2 static token source so the bearer header is
  applied by the http.Client itself.

PAGINATION:
  FetchLoggedHours follows next_page until exhausted and aggregates all
  pages before returning. The earliest/latest entry-date probes use
  per_page=1: the API returns entries newest-first, so page 1 holds the
  latest entry and the last page holds the earliest.

SEE ALSO:
  - engine/types.go: LoggedHoursEntry, the shape handed to the engine
*/
package harvest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/oauth2"

	"github.com/leap/balance-engine/engine"
)

// DefaultBaseURL is the hosted Harvest API v2 endpoint.
const DefaultBaseURL = "https://api.harvestapp.com/api/v2"

const userAgent = "leap-balance-engine"

// =============================================================================
// ERRORS
// =============================================================================

// ErrProvider is the sentinel for every failure this package produces.
// Use with errors.Is.
var ErrProvider = errors.New("time-tracking provider request failed")

// RequestError carries the HTTP status of a failed provider call.
type RequestError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s: provider returned %d: %s", e.Op, e.StatusCode, e.Body)
}

func (e *RequestError) Unwrap() error { return ErrProvider }

// =============================================================================
// CLIENT
// =============================================================================

// Client is an authenticated Harvest API client.
type Client struct {
	baseURL    string
	accountID  string
	httpClient *http.Client
}

// NewClient creates a client for the given account. baseURL may be empty
// to use the hosted API.
func NewClient(ctx context.Context, baseURL, accountID, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return &Client{
		baseURL:    baseURL,
		accountID:  accountID,
		httpClient: oauth2.NewClient(ctx, ts),
	}
}

// timeEntry is the wire shape of one Harvest time entry; only the fields
// the engine consumes are decoded.
type timeEntry struct {
	SpentDate string  `json:"spent_date"`
	Hours     float64 `json:"hours"`
}

// timeEntriesResponse is the paged response of /time_entries.
type timeEntriesResponse struct {
	TimeEntries []timeEntry `json:"time_entries"`
	TotalPages  int         `json:"total_pages"`
	NextPage    *int        `json:"next_page"`
}

type userResponse struct {
	ID int64 `json:"id"`
}

func (c *Client) get(ctx context.Context, op, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%s: %w: %v", op, ErrProvider, err)
	}
	req.Header.Set("Harvest-Account-ID", c.accountID)
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w: %v", op, ErrProvider, err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("%s: %w: reading response: %v", op, ErrProvider, err)
	}

	if resp.StatusCode != http.StatusOK {
		return &RequestError{Op: op, StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: %w: decoding response: %v", op, ErrProvider, err)
	}
	return nil
}

// FetchUserID resolves the authenticated user via /users/me.
func (c *Client) FetchUserID(ctx context.Context) (string, error) {
	var user userResponse
	if err := c.get(ctx, "fetch user", "/users/me", nil, &user); err != nil {
		return "", err
	}
	return strconv.FormatInt(user.ID, 10), nil
}

// FetchLoggedHours returns all time entries for the user in [start, end],
// paginating internally and aggregating every page before returning.
func (c *Client) FetchLoggedHours(ctx context.Context, userID string, start, end engine.Day) ([]engine.LoggedHoursEntry, error) {
	var entries []engine.LoggedHoursEntry

	page := 1
	for {
		query := url.Values{}
		query.Set("user_id", userID)
		query.Set("from", start.String())
		query.Set("to", end.String())
		query.Set("page", strconv.Itoa(page))

		var resp timeEntriesResponse
		if err := c.get(ctx, "fetch time entries", "/time_entries", query, &resp); err != nil {
			return nil, err
		}

		for _, e := range resp.TimeEntries {
			day, err := engine.ParseDay(e.SpentDate)
			if err != nil {
				return nil, fmt.Errorf("fetch time entries: %w: bad spent_date %q", ErrProvider, e.SpentDate)
			}
			entries = append(entries, engine.LoggedHoursEntry{
				Date:  day,
				Hours: engine.NewHours(e.Hours),
			})
		}

		if resp.NextPage == nil {
			return entries, nil
		}
		page = *resp.NextPage
	}
}

// EarliestEntryDate returns the date of the user's oldest time entry.
// ok is false when the user has no entries at all; the caller falls back
// to its default window.
func (c *Client) EarliestEntryDate(ctx context.Context, userID string) (engine.Day, bool, error) {
	resp, err := c.probeEntry(ctx, userID, 1)
	if err != nil {
		return engine.Day{}, false, err
	}

	// Entries come newest-first; the earliest lives on the last page.
	if resp.TotalPages > 1 {
		resp, err = c.probeEntry(ctx, userID, resp.TotalPages)
		if err != nil {
			return engine.Day{}, false, err
		}
	}
	return firstEntryDate(resp)
}

// LatestEntryDate returns the date of the user's newest time entry.
// ok is false when the user has no entries.
func (c *Client) LatestEntryDate(ctx context.Context, userID string) (engine.Day, bool, error) {
	resp, err := c.probeEntry(ctx, userID, 1)
	if err != nil {
		return engine.Day{}, false, err
	}
	return firstEntryDate(resp)
}

func (c *Client) probeEntry(ctx context.Context, userID string, page int) (timeEntriesResponse, error) {
	query := url.Values{}
	query.Set("user_id", userID)
	query.Set("per_page", "1")
	query.Set("page", strconv.Itoa(page))

	var resp timeEntriesResponse
	if err := c.get(ctx, "probe entry dates", "/time_entries", query, &resp); err != nil {
		return timeEntriesResponse{}, err
	}
	return resp, nil
}

func firstEntryDate(resp timeEntriesResponse) (engine.Day, bool, error) {
	if len(resp.TimeEntries) == 0 {
		return engine.Day{}, false, nil
	}
	day, err := engine.ParseDay(resp.TimeEntries[0].SpentDate)
	if err != nil {
		return engine.Day{}, false, fmt.Errorf("probe entry dates: %w: bad spent_date %q", ErrProvider, resp.TimeEntries[0].SpentDate)
	}
	return day, true, nil
}
