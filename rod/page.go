package rod

import (
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// Page is the part of a browser tab the challenge loop and page actions
// drive.
type Page interface {
	Reload() error
	HTML() (string, error)
	Title() (string, error)

	// ScrollBy scrolls the window down by pixels.
	ScrollBy(pixels int) error
	// AtBottom reports whether the viewport has reached the end of the page.
	AtBottom() (bool, error)
	// ScrollToBottom jumps to the current end of the page.
	ScrollToBottom() error
	// ScrollHeight returns the document height in pixels.
	ScrollHeight() (int, error)

	// Count returns how many elements match selector.
	Count(selector string) (int, error)
	// ClickNth clicks the i-th element matching selector.
	ClickNth(selector string, i int) error
}

// Ensure rodPage implements Page at compile time.
var _ Page = (*rodPage)(nil)

// rodPage adapts a rod page to Page.
type rodPage struct {
	page *rod.Page
}

func (p *rodPage) Reload() error {
	if err := p.page.Reload(); err != nil {
		return err
	}
	return p.page.WaitLoad()
}

func (p *rodPage) HTML() (string, error) {
	return p.page.HTML()
}

func (p *rodPage) Title() (string, error) {
	info, err := p.page.Info()
	if err != nil {
		return "", err
	}
	return info.Title, nil
}

func (p *rodPage) ScrollBy(pixels int) error {
	_, err := p.page.Eval(`(px) => window.scrollBy(0, px)`, pixels)
	return err
}

func (p *rodPage) AtBottom() (bool, error) {
	res, err := p.page.Eval(`() => window.pageYOffset + window.innerHeight >= document.body.scrollHeight`)
	if err != nil {
		return false, err
	}
	return res.Value.Bool(), nil
}

func (p *rodPage) ScrollToBottom() error {
	_, err := p.page.Eval(`() => window.scrollTo(0, document.body.scrollHeight)`)
	return err
}

func (p *rodPage) ScrollHeight() (int, error) {
	res, err := p.page.Eval(`() => document.body.scrollHeight`)
	if err != nil {
		return 0, err
	}
	return res.Value.Int(), nil
}

func (p *rodPage) Count(selector string) (int, error) {
	els, err := p.page.Elements(selector)
	if err != nil {
		return 0, err
	}
	return len(els), nil
}

// ClickNth scrolls the element into view and clicks it, falling back to a
// script click when the element is covered.
func (p *rodPage) ClickNth(selector string, i int) error {
	els, err := p.page.Elements(selector)
	if err != nil {
		return err
	}
	if i >= len(els) {
		return nil
	}
	el := els[i]
	_ = el.ScrollIntoView()
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		_, err = el.Eval(`() => this.click()`)
		return err
	}
	return nil
}
