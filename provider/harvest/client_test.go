package harvest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leap/balance-engine/engine"
	"github.com/leap/balance-engine/provider/harvest"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

type pageResponse struct {
	TimeEntries []map[string]any `json:"time_entries"`
	TotalPages  int              `json:"total_pages"`
	NextPage    *int             `json:"next_page"`
}

func entry(date string, hours float64) map[string]any {
	return map[string]any{"spent_date": date, "hours": hours}
}

func intPtr(v int) *int { return &v }

func newTestClient(t *testing.T, handler http.Handler) *harvest.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return harvest.NewClient(context.Background(), server.URL, "12345", "test-token")
}

// =============================================================================
// AUTH & HEADERS
// =============================================================================

func TestClient_SendsAuthHeaders(t *testing.T) {
	// GIVEN: A client built from an account id and token
	// WHEN: Making any request
	// THEN: Bearer token and account id ride on the request headers

	var got http.Header
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		json.NewEncoder(w).Encode(map[string]any{"id": 77})
	}))

	_, err := client.FetchUserID(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-token", got.Get("Authorization"))
	assert.Equal(t, "12345", got.Get("Harvest-Account-ID"))
	assert.Equal(t, "application/json", got.Get("Accept"))
}

func TestClient_FetchUserID(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/me", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"id": 4242})
	}))

	id, err := client.FetchUserID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "4242", id)
}

// =============================================================================
// LOGGED HOURS
// =============================================================================

func TestClient_FetchLoggedHours_AggregatesPages(t *testing.T) {
	// GIVEN: Two pages of time entries
	// WHEN: Fetching logged hours
	// THEN: Both pages are followed and aggregated in order

	pages := map[string]pageResponse{
		"1": {
			TimeEntries: []map[string]any{entry("2024-01-02", 7.5), entry("2024-01-01", 3)},
			TotalPages:  2,
			NextPage:    intPtr(2),
		},
		"2": {
			TimeEntries: []map[string]any{entry("2024-01-01", 4.5)},
			TotalPages:  2,
		},
	}

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/time_entries", r.URL.Path)
		assert.Equal(t, "99", r.URL.Query().Get("user_id"))
		assert.Equal(t, "2024-01-01", r.URL.Query().Get("from"))
		assert.Equal(t, "2024-01-07", r.URL.Query().Get("to"))
		json.NewEncoder(w).Encode(pages[r.URL.Query().Get("page")])
	}))

	entries, err := client.FetchLoggedHours(context.Background(), "99",
		engine.NewDay(2024, time.January, 1), engine.NewDay(2024, time.January, 7))
	require.NoError(t, err)

	require.Len(t, entries, 3)
	assert.Equal(t, engine.NewDay(2024, time.January, 2), entries[0].Date)
	assert.Equal(t, 7.5, entries[0].Hours.Float64())
	assert.Equal(t, 4.5, entries[2].Hours.Float64())
}

func TestClient_FetchLoggedHours_ErrorStatus(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid token", http.StatusUnauthorized)
	}))

	_, err := client.FetchLoggedHours(context.Background(), "99",
		engine.NewDay(2024, time.January, 1), engine.NewDay(2024, time.January, 7))

	require.Error(t, err)
	assert.ErrorIs(t, err, harvest.ErrProvider)

	var reqErr *harvest.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusUnauthorized, reqErr.StatusCode)
}

func TestClient_FetchLoggedHours_BadSpentDate(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(pageResponse{
			TimeEntries: []map[string]any{entry("not-a-date", 1)},
		})
	}))

	_, err := client.FetchLoggedHours(context.Background(), "99",
		engine.NewDay(2024, time.January, 1), engine.NewDay(2024, time.January, 7))
	assert.ErrorIs(t, err, harvest.ErrProvider)
}

// =============================================================================
// ENTRY-DATE PROBES
// =============================================================================

func TestClient_EarliestEntryDate_JumpsToLastPage(t *testing.T) {
	// GIVEN: Entries spread over many pages, newest first
	// WHEN: Probing the earliest entry date
	// THEN: The probe reads page 1 for total_pages, then the last page

	var requestedPages []string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		requestedPages = append(requestedPages, page)
		assert.Equal(t, "1", r.URL.Query().Get("per_page"))

		resp := pageResponse{TotalPages: 40}
		if page == "40" {
			resp.TimeEntries = []map[string]any{entry("2022-03-15", 6)}
		} else {
			resp.TimeEntries = []map[string]any{entry("2024-06-01", 8)}
		}
		json.NewEncoder(w).Encode(resp)
	}))

	day, ok, err := client.EarliestEntryDate(context.Background(), "99")
	require.NoError(t, err)

	assert.True(t, ok)
	assert.Equal(t, engine.NewDay(2022, time.March, 15), day)
	assert.Equal(t, []string{"1", "40"}, requestedPages)
}

func TestClient_LatestEntryDate_FirstPage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(pageResponse{
			TimeEntries: []map[string]any{entry("2024-06-01", 8)},
			TotalPages:  40,
		})
	}))

	day, ok, err := client.LatestEntryDate(context.Background(), "99")
	require.NoError(t, err)

	assert.True(t, ok)
	assert.Equal(t, engine.NewDay(2024, time.June, 1), day)
}

func TestClient_EntryDateProbes_NoEntries(t *testing.T) {
	// A user without any time entries yields ok=false, not an error.
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(pageResponse{TotalPages: 0})
	}))

	_, ok, err := client.EarliestEntryDate(context.Background(), "99")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = client.LatestEntryDate(context.Background(), "99")
	require.NoError(t, err)
	assert.False(t, ok)
}
