package formfill

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/lukman83/vinted-relist/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakePage records every interaction and serves canned dropdown contents.
type fakePage struct {
	inputs    map[string]string
	clicked   []string
	dropdowns map[string][]string
	failSet   map[string]bool
	failClick map[string]bool
}

func newFakePage() *fakePage {
	return &fakePage{
		inputs:    map[string]string{},
		dropdowns: map[string][]string{},
		failSet:   map[string]bool{},
		failClick: map[string]bool{},
	}
}

func (p *fakePage) SetInput(selector, value string) error {
	if p.failSet[selector] {
		return errors.New("input not found: " + selector)
	}
	p.inputs[selector] = value
	return nil
}

func (p *fakePage) Click(selector string) error {
	if p.failClick[selector] {
		return errors.New("element not found: " + selector)
	}
	p.clicked = append(p.clicked, selector)
	return nil
}

func (p *fakePage) ClickResult(selector string) error {
	return p.Click(selector)
}

func (p *fakePage) DropdownLabels(inputSelector string) ([]string, error) {
	labels, ok := p.dropdowns[inputSelector]
	if !ok {
		return nil, errors.New("no dropdown attached to " + inputSelector)
	}
	return labels, nil
}

func (p *fakePage) ClickDropdownLabel(inputSelector, label string) error {
	p.clicked = append(p.clicked, fmt.Sprintf("%s:%s", inputSelector, label))
	return nil
}

func newTestFiller(page Page) *Filler {
	return NewFiller(page, InstantWait{}, DefaultDelays(), zap.NewNop())
}

func fullTemplate() models.TemplateData {
	return models.TemplateData{
		Title:       "Blue Denim Jacket",
		Description: "Barely worn.",
		Category:    "Jackets",
		Brand:       "Levi's",
		Size:        "M",
		Status:      "Very good",
		Colors:      "Blue, Navy",
	}
}

func TestFill_AllFields(t *testing.T) {
	page := newFakePage()
	page.dropdowns[selSize] = []string{"S", "M", "L"}
	page.dropdowns[selCondition] = []string{"New with tags", "Very good", "Good"}
	page.dropdowns[selColor] = []string{"Black", "Blue", "Navy", "Red"}

	result := newTestFiller(page).Fill(context.Background(), fullTemplate())

	assert.True(t, result.Success)
	assert.Empty(t, result.Errors)
	assert.Equal(t, []string{"title", "description", "category", "brand", "size", "condition", "colors"}, result.Filled)

	assert.Equal(t, "Blue Denim Jacket", page.inputs[selTitle])
	assert.Equal(t, "Barely worn.", page.inputs[selDescription])
	assert.Equal(t, "Jackets", page.inputs[selCategorySearch])
	assert.Equal(t, "Levi's", page.inputs[selBrand])

	// Both wanted colors were clicked, nothing else.
	assert.Contains(t, page.clicked, selColor+":Blue")
	assert.Contains(t, page.clicked, selColor+":Navy")
	assert.NotContains(t, page.clicked, selColor+":Black")
}

func TestFill_TextFieldFailureSinksTheRun(t *testing.T) {
	page := newFakePage()
	page.failSet[selTitle] = true

	result := newTestFiller(page).Fill(context.Background(), fullTemplate())

	assert.False(t, result.Success)
	assert.Empty(t, result.Filled)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "general", result.Errors[0].Field)
	// Nothing after the text fields runs.
	assert.Empty(t, page.clicked)
}

func TestFill_TaxonomyFailuresAreRecovered(t *testing.T) {
	page := newFakePage()
	page.failClick[selCategory] = true
	page.dropdowns[selSize] = []string{"S", "L"} // no M
	page.dropdowns[selCondition] = []string{"Very good"}
	page.dropdowns[selColor] = []string{"Blue", "Navy"}

	result := newTestFiller(page).Fill(context.Background(), fullTemplate())

	// Text fields carried the run despite two taxonomy misses.
	assert.True(t, result.Success)
	assert.Contains(t, result.Filled, "condition")
	assert.Contains(t, result.Filled, "colors")

	var fields []string
	for _, fe := range result.Errors {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"category", "size"}, fields)
}

func TestFill_EmptyFieldsSkipped(t *testing.T) {
	page := newFakePage()

	result := newTestFiller(page).Fill(context.Background(), models.TemplateData{
		Title:       "Only title",
		Description: "And description",
	})

	assert.True(t, result.Success)
	assert.Empty(t, result.Errors)
	assert.Equal(t, []string{"title", "description"}, result.Filled)
	assert.Empty(t, page.clicked)
}

func TestFill_NoColorMatches(t *testing.T) {
	page := newFakePage()
	page.dropdowns[selColor] = []string{"Black", "White"}

	result := newTestFiller(page).Fill(context.Background(), models.TemplateData{
		Title:       "x",
		Description: "y",
		Colors:      "Blue, Navy",
	})

	assert.True(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "colors", result.Errors[0].Field)
	assert.Contains(t, result.Errors[0].Error, "no colors option matching")
}

func TestSelectFromDropdown_TrimsLabels(t *testing.T) {
	page := newFakePage()
	page.dropdowns[selSize] = []string{"  M  ", "L"}

	f := newTestFiller(page)
	err := f.selectFromDropdown(context.Background(), "size", selSize, "M")
	require.NoError(t, err)
	assert.Contains(t, page.clicked, selSize+":  M  ")
}

func TestFill_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	page := newFakePage()
	result := newTestFiller(page).Fill(ctx, fullTemplate())

	// Text fields are synchronous DOM writes; the settle after them notices
	// the dead context and the taxonomy fields never run.
	assert.True(t, result.Success)
	assert.Equal(t, []string{"title", "description"}, result.Filled)
}
