package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/MrIbrahem/OWID-categories/internal/logger"
)

// DefaultAPIEndpoint is the Commons Action API.
const DefaultAPIEndpoint = "https://commons.wikimedia.org/w/api.php"

// DefaultUserAgent identifies the tool, as Wikimedia policy requires.
const DefaultUserAgent = "OWID-Commons-Categorizer/1.0 " +
	"(https://github.com/MrIbrahem/OWID-categories; contact via GitHub)"

const requestTimeout = 30 * time.Second

// Client implements Site against a MediaWiki Action API endpoint.
// Sessions are cookie-based; Login must be called before SavePage.
type Client struct {
	httpClient *http.Client
	apiURL     string
	userAgent  string
	log        logger.Interface
}

// Option configures a Client.
type Option func(*Client)

// WithAPIURL overrides the API endpoint, e.g. for tests.
func WithAPIURL(apiURL string) Option {
	return func(c *Client) { c.apiURL = apiURL }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a Commons API client.
func NewClient(log logger.Interface, opts ...Option) *Client {
	jar, _ := cookiejar.New(nil)
	c := &Client{
		httpClient: &http.Client{Timeout: requestTimeout, Jar: jar},
		apiURL:     DefaultAPIEndpoint,
		userAgent:  DefaultUserAgent,
		log:        log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// apiResponse covers the Action API fields the client reads. All
// queries use formatversion=2.
type apiResponse struct {
	Error *struct {
		Code string `json:"code"`
		Info string `json:"info"`
	} `json:"error"`
	Login *struct {
		Result string `json:"result"`
	} `json:"login"`
	Edit *struct {
		Result string `json:"result"`
	} `json:"edit"`
	Query *struct {
		Tokens map[string]string `json:"tokens"`
		Pages  []struct {
			Title        string `json:"title"`
			Missing      bool   `json:"missing"`
			CategoryInfo *struct {
				Size int `json:"size"`
			} `json:"categoryinfo"`
			Revisions []struct {
				Slots struct {
					Main struct {
						Content string `json:"content"`
					} `json:"main"`
				} `json:"slots"`
			} `json:"revisions"`
		} `json:"pages"`
	} `json:"query"`
}

// Login authenticates a bot account.
func (c *Client) Login(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return ErrMissingCredentials
	}

	c.log.Info("logging in to Commons", "username", username)

	token, err := c.fetchToken(ctx, "login")
	if err != nil {
		return fmt.Errorf("fetch login token: %w", err)
	}

	resp, err := c.post(ctx, url.Values{
		"action":     {"login"},
		"lgname":     {username},
		"lgpassword": {password},
		"lgtoken":    {token},
	})
	if err != nil {
		return fmt.Errorf("login request: %w", err)
	}
	if resp.Login == nil || resp.Login.Result != "Success" {
		result := "no result"
		if resp.Login != nil {
			result = resp.Login.Result
		}
		return fmt.Errorf("%w: %s", ErrLoginFailed, result)
	}

	c.log.Info("successfully logged in")
	return nil
}

// PageExists reports whether a page exists.
func (c *Client) PageExists(ctx context.Context, title string) (bool, error) {
	resp, err := c.get(ctx, url.Values{
		"action": {"query"},
		"titles": {title},
	})
	if err != nil {
		return false, err
	}
	if resp.Query == nil || len(resp.Query.Pages) == 0 {
		return false, nil
	}
	return !resp.Query.Pages[0].Missing, nil
}

// GetPageText returns the current wikitext of a page.
func (c *Client) GetPageText(ctx context.Context, title string) (string, bool, error) {
	resp, err := c.get(ctx, url.Values{
		"action":  {"query"},
		"titles":  {title},
		"prop":    {"revisions"},
		"rvprop":  {"content"},
		"rvslots": {"main"},
		"rvlimit": {"1"},
	})
	if err != nil {
		return "", false, err
	}
	if resp.Query == nil || len(resp.Query.Pages) == 0 {
		return "", false, nil
	}
	page := resp.Query.Pages[0]
	if page.Missing || len(page.Revisions) == 0 {
		return "", false, nil
	}
	return page.Revisions[0].Slots.Main.Content, true, nil
}

// SavePage writes new wikitext to a page. A fresh CSRF token is fetched
// per edit; tokens are cheap and never stale that way.
func (c *Client) SavePage(ctx context.Context, title, text, summary string) error {
	token, err := c.fetchToken(ctx, "csrf")
	if err != nil {
		return fmt.Errorf("fetch csrf token: %w", err)
	}

	resp, err := c.post(ctx, url.Values{
		"action":  {"edit"},
		"title":   {title},
		"text":    {text},
		"summary": {summary},
		"bot":     {"1"},
		"token":   {token},
	})
	if err != nil {
		return fmt.Errorf("edit request: %w", err)
	}
	if resp.Edit == nil || resp.Edit.Result != "Success" {
		return fmt.Errorf("%w: %s", ErrEditFailed, title)
	}
	return nil
}

// CategoryMemberCount returns the member count of a category, 0 when
// the category page does not exist.
func (c *Client) CategoryMemberCount(ctx context.Context, category string) (int, error) {
	title := category
	if !strings.HasPrefix(title, "Category:") {
		title = "Category:" + title
	}
	resp, err := c.get(ctx, url.Values{
		"action": {"query"},
		"titles": {title},
		"prop":   {"categoryinfo"},
	})
	if err != nil {
		return 0, err
	}
	if resp.Query == nil || len(resp.Query.Pages) == 0 {
		return 0, nil
	}
	page := resp.Query.Pages[0]
	if page.Missing || page.CategoryInfo == nil {
		return 0, nil
	}
	return page.CategoryInfo.Size, nil
}

func (c *Client) fetchToken(ctx context.Context, tokenType string) (string, error) {
	resp, err := c.get(ctx, url.Values{
		"action": {"query"},
		"meta":   {"tokens"},
		"type":   {tokenType},
	})
	if err != nil {
		return "", err
	}
	if resp.Query == nil {
		return "", fmt.Errorf("no token in response for type %q", tokenType)
	}
	token, ok := resp.Query.Tokens[tokenType+"token"]
	if !ok || token == "" {
		return "", fmt.Errorf("no token in response for type %q", tokenType)
	}
	return token, nil
}

func (c *Client) get(ctx context.Context, params url.Values) (*apiResponse, error) {
	c.setDefaults(params)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) post(ctx context.Context, params url.Values) (*apiResponse, error) {
	c.setDefaults(params)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL,
		strings.NewReader(params.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *Client) setDefaults(params url.Values) {
	params.Set("format", "json")
	params.Set("formatversion", "2")
}

func (c *Client) do(req *http.Request) (*apiResponse, error) {
	req.Header.Set("User-Agent", c.userAgent)

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("api returned status %d", httpResp.StatusCode)
	}

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode api response: %w", err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("api error %s: %s", resp.Error.Code, resp.Error.Info)
	}
	return &resp, nil
}
