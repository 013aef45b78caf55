// Package editor decides and applies idempotent category-tagging edits.
// The decision functions in this file are pure: they operate on strings
// supplied by the caller and never touch the network.
package editor

import (
	"strings"
	"unicode"
)

// Action is the outcome of an edit decision.
type Action int

const (
	// ActionApply means an edit is needed; NewText and Summary are set.
	ActionApply Action = iota
	// ActionAlreadyPresent means the page already carries the category.
	ActionAlreadyPresent
	// ActionPageMissing means the page does not exist; no edit possible.
	ActionPageMissing
)

// Decision is the result of evaluating one page against one category.
type Decision struct {
	Action  Action
	NewText string
	Summary string
}

// createCategorySummary is the fixed commit summary for category
// bootstrap edits.
const createCategorySummary = "Create category for OWID graphs"

// categoryPrefix is the namespace prefix on full category names.
const categoryPrefix = "Category:"

// CategoryPresent reports whether the page text already carries the
// category link. The "Category:" keyword matches case-insensitively;
// the category name itself matches case-sensitively.
func CategoryPresent(pageText, category string) bool {
	if pageText == "" {
		return false
	}
	name := strings.TrimPrefix(category, categoryPrefix)
	return strings.Contains(pageText, "[[Category:"+name+"]]") ||
		strings.Contains(pageText, "[[category:"+name+"]]")
}

// AddCategory decides how to tag a page with a category. The caller
// supplies page existence; applying the produced text and calling
// AddCategory again yields ActionAlreadyPresent, so the edit is
// idempotent.
func AddCategory(pageExists bool, pageText, category string) Decision {
	if !pageExists {
		return Decision{Action: ActionPageMissing}
	}
	if CategoryPresent(pageText, category) {
		return Decision{Action: ActionAlreadyPresent}
	}
	newText := strings.TrimRightFunc(pageText, unicode.IsSpace) + "\n[[" + category + "]]\n"
	return Decision{
		Action:  ActionApply,
		NewText: newText,
		Summary: "Add " + category,
	}
}

// CreateCategory decides whether a category page needs bootstrap
// content: a single parent-category link with the raw entity name as
// sort key.
func CreateCategory(categoryExists bool, parentCategory, sortKey string) Decision {
	if categoryExists {
		return Decision{Action: ActionAlreadyPresent}
	}
	return Decision{
		Action:  ActionApply,
		NewText: "[[Category:" + parentCategory + "|" + sortKey + "]]",
		Summary: createCategorySummary,
	}
}
