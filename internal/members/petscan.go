package members

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/MrIbrahem/OWID-categories/internal/logger"
	"github.com/MrIbrahem/OWID-categories/internal/retry"
)

// DefaultPetScanURL is the public PetScan instance.
const DefaultPetScanURL = "https://petscan.wmflabs.org/"

// PetScanFetcher lists category members through a PetScan plain query.
type PetScanFetcher struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	policy     retry.Policy
	log        logger.Interface
}

// PetScanOption configures a PetScanFetcher.
type PetScanOption func(*PetScanFetcher)

// WithPetScanURL overrides the PetScan endpoint, e.g. for tests.
func WithPetScanURL(baseURL string) PetScanOption {
	return func(f *PetScanFetcher) { f.baseURL = baseURL }
}

// WithPetScanPolicy overrides the retry policy.
func WithPetScanPolicy(p retry.Policy) PetScanOption {
	return func(f *PetScanFetcher) { f.policy = p }
}

// NewPetScanFetcher creates a PetScan member fetcher.
func NewPetScanFetcher(log logger.Interface, opts ...PetScanOption) *PetScanFetcher {
	f := &PetScanFetcher{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    DefaultPetScanURL,
		userAgent:  DefaultUserAgent,
		policy:     retry.DefaultPolicy(),
		log:        log,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchMembers runs one plain-format PetScan query for the category and
// splits the response into titles, one per line.
func (f *PetScanFetcher) FetchMembers(ctx context.Context, category string) ([]string, error) {
	name := category
	if strings.HasPrefix(strings.ToLower(name), "category:") {
		name = name[len("category:"):]
	}

	params := url.Values{
		"language":   {"commons"},
		"project":    {"wikimedia"},
		"categories": {name},
		"format":     {"plain"},
		"depth":      {"0"},
		"ns[6]":      {"1"},
		"doit":       {"Do it!"},
	}
	queryURL := f.baseURL + "?" + params.Encode()

	f.log.Info("fetching category members via petscan", "category", category)

	var body []byte
	err := f.policy.Do(ctx, func() error {
		var fetchErr error
		body, fetchErr = fetchBody(ctx, f.httpClient, queryURL, f.userAgent, retry.Transient)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(string(body))
	if text == "" {
		f.log.Warn("petscan returned an empty response", "category", category)
		return []string{}, nil
	}

	var titles []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			titles = append(titles, line)
		}
	}

	f.log.Info("finished fetching members via petscan", "total", len(titles))
	return titles, nil
}
