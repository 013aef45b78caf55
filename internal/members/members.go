// Package members lists the files belonging to a Commons category.
// Two adapters exist: the paginated Action API listing and the PetScan
// plain listing. Both share one capped exponential backoff policy for
// transient failures.
package members

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Fetcher supplies the raw title list for a category.
type Fetcher interface {
	FetchMembers(ctx context.Context, category string) ([]string, error)
}

// DefaultUserAgent identifies the tool, as Wikimedia policy requires.
const DefaultUserAgent = "OWID-Commons-Processor/1.0 " +
	"(https://github.com/MrIbrahem/OWID-categories; contact via GitHub)"

const requestTimeout = 30 * time.Second

// fetchBody performs one GET and returns the response body. Server-side
// failures come back wrapped as transient so the policy retries them.
func fetchBody(ctx context.Context, client *http.Client, url, userAgent string, markTransient func(error) error) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, markTransient(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, markTransient(fmt.Errorf("server returned status %d", resp.StatusCode))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, markTransient(err)
	}
	return body, nil
}
