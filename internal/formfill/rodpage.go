package formfill

import (
	"fmt"
	"time"

	"github.com/go-rod/rod"
)

// WaitReady blocks until the create form's title input is mounted, the
// signal that the form actually rendered.
func WaitReady(page *rod.Page, timeout time.Duration) error {
	_, err := page.Timeout(timeout).Element(selTitle)
	if err != nil {
		return fmt.Errorf("title input not found: %w", err)
	}
	return nil
}

// RodPage implements Page over a live rod page. All interactions go through
// in-page JavaScript: clicks and value writes must happen in the page's own
// world for its reactive framework to notice them.
type RodPage struct {
	page *rod.Page
}

// NewRodPage wraps a rod page for form filling.
func NewRodPage(page *rod.Page) *RodPage {
	return &RodPage{page: page}
}

func (p *RodPage) SetInput(selector, value string) error {
	res, err := p.page.Eval(`(sel, val) => {
		const el = document.querySelector(sel);
		if (!el) return false;
		const proto = el instanceof HTMLTextAreaElement
			? HTMLTextAreaElement.prototype
			: HTMLInputElement.prototype;
		const setter = Object.getOwnPropertyDescriptor(proto, 'value').set;
		setter.call(el, val);
		el.dispatchEvent(new Event('input', { bubbles: true }));
		el.dispatchEvent(new Event('change', { bubbles: true }));
		return true;
	}`, selector, value)
	if err != nil {
		return fmt.Errorf("set input %s: %w", selector, err)
	}
	if !res.Value.Bool() {
		return fmt.Errorf("input not found: %s", selector)
	}
	return nil
}

func (p *RodPage) Click(selector string) error {
	res, err := p.page.Eval(`(sel) => {
		const el = document.querySelector(sel);
		if (!el) return false;
		el.click();
		return true;
	}`, selector)
	if err != nil {
		return fmt.Errorf("click %s: %w", selector, err)
	}
	if !res.Value.Bool() {
		return fmt.Errorf("element not found: %s", selector)
	}
	return nil
}

func (p *RodPage) ClickResult(selector string) error {
	return p.Click(selector)
}

// DropdownLabels reads the option labels of the dropdown rendered next to
// the trigger input (the form mounts it as the input's next sibling).
func (p *RodPage) DropdownLabels(inputSelector string) ([]string, error) {
	res, err := p.page.Eval(`(sel) => {
		const input = document.querySelector(sel);
		if (!input || !input.nextElementSibling) return null;
		const titles = input.nextElementSibling.querySelectorAll('.web_ui__Cell__title');
		return Array.from(titles).map(t => t.textContent || '');
	}`, inputSelector)
	if err != nil {
		return nil, fmt.Errorf("scan dropdown for %s: %w", inputSelector, err)
	}
	if res.Value.Nil() {
		return nil, fmt.Errorf("no dropdown attached to %s", inputSelector)
	}

	var labels []string
	for _, v := range res.Value.Arr() {
		labels = append(labels, v.Str())
	}
	return labels, nil
}

func (p *RodPage) ClickDropdownLabel(inputSelector, label string) error {
	res, err := p.page.Eval(`(sel, label) => {
		const input = document.querySelector(sel);
		if (!input || !input.nextElementSibling) return false;
		const titles = input.nextElementSibling.querySelectorAll('.web_ui__Cell__title');
		for (const t of titles) {
			if ((t.textContent || '').trim() === label.trim()) {
				const row = t.closest('li');
				(row && row.firstChild ? row.firstChild : t).click();
				return true;
			}
		}
		return false;
	}`, inputSelector, label)
	if err != nil {
		return fmt.Errorf("click dropdown item %q: %w", label, err)
	}
	if !res.Value.Bool() {
		return fmt.Errorf("dropdown item not found: %q", label)
	}
	return nil
}
