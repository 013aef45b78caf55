package members

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/MrIbrahem/OWID-categories/internal/logger"
	"github.com/MrIbrahem/OWID-categories/internal/retry"
)

// DefaultAPIEndpoint is the Commons Action API.
const DefaultAPIEndpoint = "https://commons.wikimedia.org/w/api.php"

// APIFetcher lists category members through the paginated
// list=categorymembers query.
type APIFetcher struct {
	httpClient *http.Client
	apiURL     string
	userAgent  string
	policy     retry.Policy
	log        logger.Interface
}

// APIOption configures an APIFetcher.
type APIOption func(*APIFetcher)

// WithAPIURL overrides the API endpoint, e.g. for tests.
func WithAPIURL(apiURL string) APIOption {
	return func(f *APIFetcher) { f.apiURL = apiURL }
}

// WithAPIPolicy overrides the retry policy.
func WithAPIPolicy(p retry.Policy) APIOption {
	return func(f *APIFetcher) { f.policy = p }
}

// NewAPIFetcher creates an Action API member fetcher.
func NewAPIFetcher(log logger.Interface, opts ...APIOption) *APIFetcher {
	f := &APIFetcher{
		httpClient: &http.Client{Timeout: requestTimeout},
		apiURL:     DefaultAPIEndpoint,
		userAgent:  DefaultUserAgent,
		policy:     retry.DefaultPolicy(),
		log:        log,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

type memberPage struct {
	Continue *struct {
		CmContinue string `json:"cmcontinue"`
	} `json:"continue"`
	Query struct {
		CategoryMembers []struct {
			Title string `json:"title"`
		} `json:"categorymembers"`
	} `json:"query"`
}

// FetchMembers walks all pages of the listing. Each page fetch is
// retried under the shared policy; exhausting retries surfaces as an
// error and aborts the listing.
func (f *APIFetcher) FetchMembers(ctx context.Context, category string) ([]string, error) {
	var titles []string
	cmcontinue := ""
	pageCount := 0

	f.log.Info("fetching category members", "category", category)

	for {
		params := url.Values{
			"action":  {"query"},
			"format":  {"json"},
			"list":    {"categorymembers"},
			"cmtitle": {category},
			"cmtype":  {"file"},
			"cmlimit": {"max"},
		}
		if cmcontinue != "" {
			params.Set("cmcontinue", cmcontinue)
		}

		var body []byte
		err := f.policy.Do(ctx, func() error {
			var fetchErr error
			body, fetchErr = fetchBody(ctx, f.httpClient, f.apiURL+"?"+params.Encode(), f.userAgent, retry.Transient)
			return fetchErr
		})
		if err != nil {
			return nil, err
		}

		var page memberPage
		if err := json.Unmarshal(body, &page); err != nil {
			// Malformed responses are not retryable; the listing stops.
			f.log.Error("malformed category members response", "error", err)
			return []string{}, nil
		}

		for _, member := range page.Query.CategoryMembers {
			titles = append(titles, member.Title)
		}
		pageCount++
		f.log.Info("fetched member page",
			"page", pageCount, "members", len(page.Query.CategoryMembers), "total", len(titles))

		if page.Continue == nil || page.Continue.CmContinue == "" {
			break
		}
		cmcontinue = page.Continue.CmContinue
	}

	f.log.Info("finished fetching members", "total", len(titles), "pages", pageCount)
	return titles, nil
}
