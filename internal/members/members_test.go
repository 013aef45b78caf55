package members_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrIbrahem/OWID-categories/internal/logger"
	"github.com/MrIbrahem/OWID-categories/internal/members"
	"github.com/MrIbrahem/OWID-categories/internal/retry"
)

func fastPolicy() retry.Policy {
	return retry.Policy{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
		Retryable:    retry.IsTransient,
	}
}

func TestAPIFetcher_Pagination(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Category:Test", r.URL.Query().Get("cmtitle"))
		assert.Equal(t, "file", r.URL.Query().Get("cmtype"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))

		if r.URL.Query().Get("cmcontinue") == "" {
			fmt.Fprint(w, `{
				"continue": {"cmcontinue": "page2"},
				"query": {"categorymembers": [
					{"title": "File:A.svg"},
					{"title": "File:B.svg"}
				]}
			}`)
			return
		}
		fmt.Fprint(w, `{
			"query": {"categorymembers": [{"title": "File:C.svg"}]}
		}`)
	}))
	defer server.Close()

	fetcher := members.NewAPIFetcher(logger.NewNoop(),
		members.WithAPIURL(server.URL), members.WithAPIPolicy(fastPolicy()))

	titles, err := fetcher.FetchMembers(context.Background(), "Category:Test")
	require.NoError(t, err)
	assert.Equal(t, []string{"File:A.svg", "File:B.svg", "File:C.svg"}, titles)
}

func TestAPIFetcher_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"query": {"categorymembers": [{"title": "File:A.svg"}]}}`)
	}))
	defer server.Close()

	fetcher := members.NewAPIFetcher(logger.NewNoop(),
		members.WithAPIURL(server.URL), members.WithAPIPolicy(fastPolicy()))

	titles, err := fetcher.FetchMembers(context.Background(), "Category:Test")
	require.NoError(t, err)
	assert.Equal(t, []string{"File:A.svg"}, titles)
	assert.Equal(t, int32(3), calls.Load())
}

func TestAPIFetcher_ExhaustionIsFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	fetcher := members.NewAPIFetcher(logger.NewNoop(),
		members.WithAPIURL(server.URL), members.WithAPIPolicy(fastPolicy()))

	_, err := fetcher.FetchMembers(context.Background(), "Category:Test")
	require.ErrorIs(t, err, retry.ErrExhausted)
}

func TestAPIFetcher_MalformedResponseReturnsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "not json at all")
	}))
	defer server.Close()

	fetcher := members.NewAPIFetcher(logger.NewNoop(),
		members.WithAPIURL(server.URL), members.WithAPIPolicy(fastPolicy()))

	titles, err := fetcher.FetchMembers(context.Background(), "Category:Test")
	require.NoError(t, err)
	assert.Empty(t, titles)
}

func TestPetScanFetcher_SplitsLines(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The Category: prefix is stripped before building the query.
		assert.Equal(t, "Test", r.URL.Query().Get("categories"))
		assert.Equal(t, "plain", r.URL.Query().Get("format"))
		fmt.Fprint(w, "File:A.svg\nFile:B.svg\n\nFile:C.svg\n")
	}))
	defer server.Close()

	fetcher := members.NewPetScanFetcher(logger.NewNoop(),
		members.WithPetScanURL(server.URL), members.WithPetScanPolicy(fastPolicy()))

	titles, err := fetcher.FetchMembers(context.Background(), "Category:Test")
	require.NoError(t, err)
	assert.Equal(t, []string{"File:A.svg", "File:B.svg", "File:C.svg"}, titles)
}

func TestPetScanFetcher_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	fetcher := members.NewPetScanFetcher(logger.NewNoop(),
		members.WithPetScanURL(server.URL), members.WithPetScanPolicy(fastPolicy()))

	titles, err := fetcher.FetchMembers(context.Background(), "Category:Test")
	require.NoError(t, err)
	assert.Empty(t, titles)
}

func TestPetScanFetcher_RetriesThenFails(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	fetcher := members.NewPetScanFetcher(logger.NewNoop(),
		members.WithPetScanURL(server.URL), members.WithPetScanPolicy(fastPolicy()))

	_, err := fetcher.FetchMembers(context.Background(), "Category:Test")
	require.ErrorIs(t, err, retry.ErrExhausted)
	assert.Equal(t, int32(3), calls.Load())
}
