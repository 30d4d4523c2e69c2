package rod

import (
	"fmt"
	"sync"

	"github.com/fwojciec/newsrank"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultMaxPages is the number of pages a browser serves before it is
// replaced. Long-lived Chromium processes keep growing in memory.
const DefaultMaxPages = 75

// BrowserManager hands out pages from a browser that is replaced after
// maxPages pages. A replaced browser is shut down once its last open page
// is released, so concurrent fetches never lose their tab.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	mu         sync.Mutex
	current    *instance
	generation int
	closed     bool

	maxPages    int
	headless    bool
	bin         string
	userDataDir string
}

// instance is one launched browser process.
type instance struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	served   int
	open     int
	retired  bool
	down     bool
}

func (in *instance) shutdown() error {
	if in.down {
		return nil
	}
	in.down = true
	err := in.browser.Close()
	in.launcher.Kill()
	return err
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxPages sets how many pages a browser serves before it is replaced.
func WithMaxPages(n int) ManagerOption {
	return func(bm *BrowserManager) {
		bm.maxPages = n
	}
}

// WithHeadless controls whether the browser window is hidden. A visible
// window lets an operator solve challenges by hand. Defaults to true.
func WithHeadless(headless bool) ManagerOption {
	return func(bm *BrowserManager) {
		bm.headless = headless
	}
}

// WithBrowserBin launches the browser binary at path, such as Edge,
// instead of the one rod finds or downloads.
func WithBrowserBin(path string) ManagerOption {
	return func(bm *BrowserManager) {
		bm.bin = path
	}
}

// WithUserDataDir keeps the browser profile in dir, so cookies set when a
// challenge is cleared survive between runs.
func WithUserDataDir(dir string) ManagerOption {
	return func(bm *BrowserManager) {
		bm.userDataDir = dir
	}
}

// NewBrowserManager launches the first browser. Close must be called when
// the manager is no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{
		maxPages: DefaultMaxPages,
		headless: true,
	}
	for _, opt := range opts {
		opt(bm)
	}

	in, err := bm.launch()
	if err != nil {
		return nil, err
	}
	bm.current = in
	bm.generation = 1
	return bm, nil
}

// OpenPage opens a blank tab. The returned release func closes the tab and
// must be called exactly once.
func (bm *BrowserManager) OpenPage() (*rod.Page, func(), error) {
	bm.mu.Lock()
	if bm.closed {
		bm.mu.Unlock()
		return nil, nil, newsrank.Errorf(newsrank.EINTERNAL, "browser manager closed")
	}
	if bm.maxPages > 0 && bm.current.served >= bm.maxPages {
		bm.replace()
	}
	in := bm.current
	in.served++
	in.open++
	bm.mu.Unlock()

	page, err := in.browser.Page(proto.TargetCreateTarget{})

	release := func() {
		if page != nil {
			_ = page.Close()
		}
		bm.mu.Lock()
		defer bm.mu.Unlock()
		in.open--
		if in.retired && in.open == 0 {
			_ = in.shutdown()
		}
	}

	if err != nil {
		release()
		return nil, nil, fmt.Errorf("open page: %w", err)
	}
	return page, release, nil
}

// replace launches a new browser and retires the current one. When the
// launch fails the current browser keeps serving. Must be called with mu
// held.
func (bm *BrowserManager) replace() {
	next, err := bm.launch()
	if err != nil {
		return
	}
	old := bm.current
	old.retired = true
	if old.open == 0 {
		_ = old.shutdown()
	}
	bm.current = next
	bm.generation++
}

// Generation counts the browsers launched so far.
func (bm *BrowserManager) Generation() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	return bm.generation
}

// Close shuts down the current browser, open pages included. Close is safe
// to call multiple times.
func (bm *BrowserManager) Close() error {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.closed {
		return nil
	}
	bm.closed = true

	in := bm.current
	bm.current = nil
	in.retired = true
	return in.shutdown()
}

// LauncherPID returns the process ID of the current browser, or 0 after
// Close.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.current == nil {
		return 0
	}
	return bm.current.launcher.PID()
}

func (bm *BrowserManager) launch() (*instance, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-notifications").
		Set("disable-blink-features", "AutomationControlled").
		Leakless(true).
		Headless(bm.headless)
	if bm.bin != "" {
		l = l.Bin(bm.bin)
	}
	if bm.userDataDir != "" {
		l = l.UserDataDir(bm.userDataDir)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return &instance{browser: browser, launcher: l}, nil
}
