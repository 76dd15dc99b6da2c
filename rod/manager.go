package rod

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the number of rendered pages after which the browser
// is restarted.
const DefaultMaxPages = 50

// BrowserManager owns a headless Chrome process and restarts it after a
// fixed number of pages. Chrome's resident memory grows with every page
// and never returns to baseline, so a long-running server recycles it.
//
// A retired browser stays up until the last page acquired on it has been
// released.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	mu       sync.Mutex
	current  *instance
	retired  map[*instance]struct{}
	pages    int
	maxPages int
	closed   bool

	launch func() (*instance, error)
}

// instance is one browser process and the number of pages rendering on it.
type instance struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	inflight int
	stopped  bool
}

func (i *instance) stop() error {
	if i.stopped {
		return nil
	}
	i.stopped = true
	var err error
	if i.browser != nil {
		err = i.browser.Close()
	}
	if i.launcher != nil {
		i.launcher.Kill()
	}
	return err
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxPages sets the number of pages served before a restart.
func WithMaxPages(n int) ManagerOption {
	return func(m *BrowserManager) {
		if n > 0 {
			m.maxPages = n
		}
	}
}

// NewBrowserManager launches a headless browser. Close must be called to
// stop the browser process.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	return newBrowserManager(launchChrome, opts...)
}

func newBrowserManager(launch func() (*instance, error), opts ...ManagerOption) (*BrowserManager, error) {
	m := &BrowserManager{
		retired:  make(map[*instance]struct{}),
		maxPages: DefaultMaxPages,
		launch:   launch,
	}
	for _, opt := range opts {
		opt(m)
	}
	inst, err := m.launch()
	if err != nil {
		return nil, err
	}
	m.current = inst
	return m, nil
}

// Acquire returns the browser to render the next page on and counts the
// page against the restart threshold. The returned release func must be
// called once the page is done. Acquire returns false once the manager is
// closed.
func (m *BrowserManager) Acquire() (*rod.Browser, func(), bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, func() {}, false
	}
	if m.pages >= m.maxPages {
		m.recycle()
	}
	m.pages++

	inst := m.current
	inst.inflight++
	var once sync.Once
	release := func() {
		once.Do(func() { m.release(inst) })
	}
	return inst.browser, release, true
}

func (m *BrowserManager) release(inst *instance) {
	m.mu.Lock()
	defer m.mu.Unlock()

	inst.inflight--
	if _, ok := m.retired[inst]; ok && inst.inflight == 0 {
		delete(m.retired, inst)
		_ = inst.stop()
	}
}

// Close stops the browser, including retired browsers that still have
// pages in flight. It is safe to call more than once.
func (m *BrowserManager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true

	var errs []error
	for inst := range m.retired {
		errs = append(errs, inst.stop())
		delete(m.retired, inst)
	}
	if m.current != nil {
		errs = append(errs, m.current.stop())
	}
	return errors.Join(errs...)
}

// LauncherPID returns the PID of the current browser process, or 0 when
// stopped.
func (m *BrowserManager) LauncherPID() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed || m.current == nil || m.current.launcher == nil {
		return 0
	}
	return m.current.launcher.PID()
}

// recycle must be called with mu held. The old browser is kept when a
// fresh one cannot be started.
func (m *BrowserManager) recycle() {
	next, err := m.launch()
	if err != nil {
		return
	}
	old := m.current
	m.current = next
	m.pages = 0

	if old.inflight == 0 {
		_ = old.stop()
		return
	}
	m.retired[old] = struct{}{}
}

func launchChrome() (*instance, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	return &instance{browser: b, launcher: l}, nil
}
