package newsrank

import (
	"strconv"
	"strings"
	"time"
)

// Action is a page interaction run after a page loads and before its
// HTML is captured. The variants are closed.
type Action interface {
	action()
}

// WaitAction pauses for a fixed duration.
type WaitAction struct {
	Delay time.Duration
}

// ScrollAction scrolls by Pixels, Times times, pausing Delay after each.
// It stops early once the bottom of the page is reached.
type ScrollAction struct {
	Pixels int
	Times  int
	Delay  time.Duration
}

// ScrollToBottomAction scrolls to the bottom until the page height stops
// changing or MaxScrolls is reached.
type ScrollToBottomAction struct {
	MaxScrolls int
	Delay      time.Duration
}

// ClickAllAction clicks every element matching any of the selectors.
type ClickAllAction struct {
	Selectors []string
	Delay     time.Duration
}

func (WaitAction) action()           {}
func (ScrollAction) action()         {}
func (ScrollToBottomAction) action() {}
func (ClickAllAction) action()       {}

// ExpandSelectors are the "load more" controls clicked by CLICK_EXPAND.
var ExpandSelectors = []string{
	"button.load-more",
	"a.load-more",
	"button.show-more",
	"a.show-more",
	"[data-load-more]",
	".expand-button",
	".see-more",
}

// Default scroll parameters.
const (
	DefaultScrollPixels = 1000
	DefaultScrollTimes  = 5
	DefaultScrollDelay  = 700 * time.Millisecond
)

// ParseAction maps an action name to its Action. Unknown names wait two
// seconds. Selectors keep their original case.
func ParseAction(name string) Action {
	name = strings.TrimSpace(name)
	upper := strings.ToUpper(name)

	switch {
	case upper == "WAIT":
		return WaitAction{Delay: 3 * time.Second}
	case upper == "INFINITE_SCROLL":
		return ScrollAction{Pixels: DefaultScrollPixels, Times: DefaultScrollTimes, Delay: DefaultScrollDelay}
	case upper == "SCROLL_TO_BOTTOM":
		return ScrollToBottomAction{MaxScrolls: 10, Delay: time.Second}
	case upper == "CLICK_EXPAND":
		return ClickAllAction{Selectors: ExpandSelectors, Delay: 500 * time.Millisecond}
	case strings.HasPrefix(upper, "CLICK:"):
		sel := strings.TrimSpace(name[len("CLICK:"):])
		if sel == "" {
			return WaitAction{Delay: 2 * time.Second}
		}
		return ClickAllAction{Selectors: []string{sel}, Delay: 500 * time.Millisecond}
	case strings.HasPrefix(upper, "SCROLL:"):
		return parseScroll(name[len("SCROLL:"):])
	default:
		return WaitAction{Delay: 2 * time.Second}
	}
}

// parseScroll reads "pixels,times,delay". Any malformed field falls back
// to the defaults for the whole action.
func parseScroll(params string) Action {
	a := ScrollAction{Pixels: DefaultScrollPixels, Times: DefaultScrollTimes, Delay: DefaultScrollDelay}
	parts := strings.Split(strings.TrimSpace(params), ",")

	def := a
	if len(parts) > 0 && strings.TrimSpace(parts[0]) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return def
		}
		a.Pixels = n
	}
	if len(parts) > 1 {
		n, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return def
		}
		a.Times = n
	}
	if len(parts) > 2 {
		f, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
		if err != nil {
			return def
		}
		a.Delay = time.Duration(f * float64(time.Second))
	}
	return a
}
