// Package wiki talks to the Wikimedia Commons Action API.
package wiki

import "context"

// Site is the capability surface the edit orchestrator needs. The
// production client and the test fake both satisfy it.
type Site interface {
	// PageExists reports whether a page exists.
	PageExists(ctx context.Context, title string) (bool, error)
	// GetPageText returns the current wikitext of a page and whether
	// the page exists.
	GetPageText(ctx context.Context, title string) (string, bool, error)
	// SavePage writes new wikitext to a page with an edit summary.
	SavePage(ctx context.Context, title, text, summary string) error
	// CategoryMemberCount returns the number of members currently in a
	// category, 0 when the category does not exist.
	CategoryMemberCount(ctx context.Context, category string) (int, error)
}
