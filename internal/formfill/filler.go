package formfill

import (
	"context"
	"fmt"
	"strings"

	"github.com/lukman83/vinted-relist/internal/models"
	"go.uber.org/zap"
)

// FieldError records one field that could not be filled.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// Result summarizes a form fill. Success requires the text fields (title,
// description): they prove the form actually loaded. Taxonomy fields are
// advisory: their individual failures land in Errors without sinking the
// run.
type Result struct {
	Success bool         `json:"success"`
	Filled  []string     `json:"filled"`
	Errors  []FieldError `json:"errors"`
}

// Filler replays a template into the marketplace's own create form. Every
// dropdown field walks the same sequence: click the trigger, wait for the
// page's async render, type or scan, locate the match, click it.
type Filler struct {
	page   Page
	wait   WaitStrategy
	delays Delays
	log    *zap.Logger
}

// NewFiller builds a filler over the given page.
func NewFiller(page Page, wait WaitStrategy, delays Delays, log *zap.Logger) *Filler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Filler{page: page, wait: wait, delays: delays, log: log}
}

// Fill populates the form field by field in a fixed order: text fields
// first, then category (whose selection can reshape the remaining option
// sets, hence the long settle afterwards), then brand, size, condition and
// colors. Each taxonomy field is recovered independently.
func (f *Filler) Fill(ctx context.Context, data models.TemplateData) Result {
	result := Result{}

	if err := f.fillTextFields(data); err != nil {
		f.log.Error("text fields failed, form did not load as expected", zap.Error(err))
		result.Errors = append(result.Errors, FieldError{Field: "general", Error: err.Error()})
		return result
	}
	result.Filled = append(result.Filled, "title", "description")
	result.Success = true

	f.tryField(ctx, &result, "category", data.Category, func() error {
		return f.searchAndSelect(ctx, "category", selCategory, selCategorySearch, selCategoryResult, data.Category)
	})

	// Let the page react to the category choice before touching the
	// dropdowns whose option sets depend on it.
	if err := f.wait.Settle(ctx, f.delays.CategorySettle); err != nil {
		result.Errors = append(result.Errors, FieldError{Field: "general", Error: err.Error()})
		return result
	}

	f.tryField(ctx, &result, "brand", data.Brand, func() error {
		// The brand trigger doubles as its own search input.
		return f.searchAndSelect(ctx, "brand", selBrand, selBrand, selBrandResult, data.Brand)
	})
	f.tryField(ctx, &result, "size", data.Size, func() error {
		return f.selectFromDropdown(ctx, "size", selSize, data.Size)
	})
	f.tryField(ctx, &result, "condition", data.Status, func() error {
		return f.selectFromDropdown(ctx, "condition", selCondition, data.Status)
	})
	f.tryField(ctx, &result, "colors", data.Colors, func() error {
		return f.selectColors(ctx, data.Colors)
	})

	return result
}

// tryField runs one field's fill, skipping empty values and recovering
// failures into the result.
func (f *Filler) tryField(ctx context.Context, result *Result, name, value string, fill func() error) {
	if value == "" {
		f.log.Debug("no value for field, skipping", zap.String("field", name))
		return
	}
	if ctx.Err() != nil {
		return
	}
	if err := fill(); err != nil {
		f.log.Warn("field fill failed", zap.String("field", name), zap.Error(err))
		result.Errors = append(result.Errors, FieldError{Field: name, Error: err.Error()})
		return
	}
	result.Filled = append(result.Filled, name)
}

func (f *Filler) fillTextFields(data models.TemplateData) error {
	if data.Title != "" {
		if err := f.page.SetInput(selTitle, data.Title); err != nil {
			return fmt.Errorf("set title: %w", err)
		}
	}
	if data.Description != "" {
		if err := f.page.SetInput(selDescription, data.Description); err != nil {
			return fmt.Errorf("set description: %w", err)
		}
	}
	return nil
}

// searchAndSelect drives an autocomplete field: open, type the query, wait
// out the async search, click the first result.
func (f *Filler) searchAndSelect(ctx context.Context, field, triggerSel, searchSel, resultSel, query string) error {
	if err := f.page.Click(triggerSel); err != nil {
		return fmt.Errorf("open %s panel: %w", field, err)
	}
	if err := f.wait.Settle(ctx, f.delays.Open); err != nil {
		return err
	}

	if err := f.page.SetInput(searchSel, query); err != nil {
		return fmt.Errorf("type %s query: %w", field, err)
	}
	if err := f.wait.Settle(ctx, f.delays.Search); err != nil {
		return err
	}

	if err := f.page.ClickResult(resultSel); err != nil {
		return &DropdownMatchError{Field: field, Query: query}
	}
	return nil
}

// selectFromDropdown opens a static dropdown and clicks the entry whose
// label exactly equals the wanted value (trimmed).
func (f *Filler) selectFromDropdown(ctx context.Context, field, triggerSel, value string) error {
	if err := f.page.Click(triggerSel); err != nil {
		return fmt.Errorf("open %s dropdown: %w", field, err)
	}
	if err := f.wait.Settle(ctx, f.delays.Dropdown); err != nil {
		return err
	}

	labels, err := f.page.DropdownLabels(triggerSel)
	if err != nil {
		return fmt.Errorf("scan %s dropdown: %w", field, err)
	}

	want := strings.TrimSpace(value)
	for _, label := range labels {
		if strings.TrimSpace(label) == want {
			return f.page.ClickDropdownLabel(triggerSel, label)
		}
	}
	return &DropdownMatchError{Field: field, Query: value}
}

// selectColors handles the multi-select color dropdown: the template value
// is a comma-joined list, each member is clicked, with a short pause between
// clicks to dodge re-render races.
func (f *Filler) selectColors(ctx context.Context, colors string) error {
	wanted := make(map[string]bool)
	for _, c := range strings.Split(colors, ",") {
		if c = strings.TrimSpace(c); c != "" {
			wanted[c] = true
		}
	}
	if len(wanted) == 0 {
		return nil
	}

	if err := f.page.Click(selColor); err != nil {
		return fmt.Errorf("open color dropdown: %w", err)
	}
	if err := f.wait.Settle(ctx, f.delays.Dropdown); err != nil {
		return err
	}

	labels, err := f.page.DropdownLabels(selColor)
	if err != nil {
		return fmt.Errorf("scan color dropdown: %w", err)
	}

	clicked := 0
	for _, label := range labels {
		if !wanted[strings.TrimSpace(label)] {
			continue
		}
		if err := f.page.ClickDropdownLabel(selColor, label); err != nil {
			return fmt.Errorf("click color %q: %w", label, err)
		}
		clicked++
		if err := f.wait.Settle(ctx, f.delays.ColorClick); err != nil {
			return err
		}
	}
	if clicked == 0 {
		return &DropdownMatchError{Field: "colors", Query: colors}
	}
	return nil
}
