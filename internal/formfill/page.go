package formfill

import "fmt"

// Form field selectors on the create-listing page.
const (
	selTitle          = `[name="title"]`
	selDescription    = `textarea[name="description"]`
	selCategory       = `input[name="category"]`
	selCategorySearch = `input#catalog-search-input`
	selCategoryResult = `[id^="catalog-search-"][id$="-result"]`
	selBrand          = `input[name="brand"]`
	selBrandResult    = `[id^="brand-"]`
	selSize           = `input[name="size"]`
	selCondition      = `input[name="condition"]`
	selColor          = `input[name="color"]`
)

// Page abstracts the primitive interactions the filler needs from the live
// create form, so the field state machines can run against a fake in tests.
type Page interface {
	// SetInput assigns value through the framework's native property setter
	// and dispatches bubbling input/change events; plain attribute writes
	// are invisible to the page's reactive framework.
	SetInput(selector, value string) error
	// Click clicks the first element matching selector.
	Click(selector string) error
	// ClickResult clicks the first autocomplete result matching selector.
	ClickResult(selector string) error
	// DropdownLabels returns the item labels of the dropdown attached to
	// the given trigger input.
	DropdownLabels(inputSelector string) ([]string, error)
	// ClickDropdownLabel clicks the dropdown item carrying exactly label.
	ClickDropdownLabel(inputSelector, label string) error
}

// DropdownMatchError means a dropdown or autocomplete produced no matching
// entry within the wait window.
type DropdownMatchError struct {
	Field string
	Query string
}

func (e *DropdownMatchError) Error() string {
	return fmt.Sprintf("no %s option matching %q", e.Field, e.Query)
}
