// Package tray provides system tray functionality using getlantern/systray.
package tray

import (
	"sync"

	"github.com/getlantern/systray"
)

// MenuItem represents a menu item
type MenuItem struct {
	ID       int
	Title    string
	Disabled bool
	Callback func()
	item     *systray.MenuItem
}

// Tray manages the system tray icon and menu
type Tray struct {
	mu      sync.Mutex
	items   []*MenuItem
	tooltip string
	icon    []byte
	ready   bool
	quitCh  chan struct{}
}

// New creates a new system tray
func New(tooltip string) *Tray {
	return &Tray{
		tooltip: tooltip,
		icon:    StatusIcon(Grey),
		quitCh:  make(chan struct{}),
	}
}

// AddMenuItem adds a clickable menu item to the tray
func (t *Tray) AddMenuItem(title string, callback func()) int {
	return t.add(&MenuItem{Title: title, Callback: callback})
}

// AddInfoItem adds a disabled item used to display text.
func (t *Tray) AddInfoItem(title string) int {
	return t.add(&MenuItem{Title: title, Disabled: true})
}

func (t *Tray) add(mi *MenuItem) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	mi.ID = len(t.items)
	t.items = append(t.items, mi)
	return mi.ID
}

// AddSeparator adds a separator to the menu
func (t *Tray) AddSeparator() {
	t.mu.Lock()
	t.items = append(t.items, nil) // nil indicates separator
	t.mu.Unlock()
}

// SetItemTitle changes a menu item's text. It may be called before Run.
func (t *Tray) SetItemTitle(id int, title string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if id < 0 || id >= len(t.items) || t.items[id] == nil {
		return
	}
	t.items[id].Title = title
	if t.items[id].item != nil {
		t.items[id].item.SetTitle(title)
	}
}

// SetIcon replaces the tray icon and tooltip.
func (t *Tray) SetIcon(icon []byte, tooltip string) {
	t.mu.Lock()
	t.icon = icon
	t.tooltip = tooltip
	ready := t.ready
	t.mu.Unlock()

	if ready {
		systray.SetIcon(icon)
		systray.SetTooltip(tooltip)
	}
}

// Run starts the tray event loop (blocks). On macOS it must be called from
// the main goroutine.
func (t *Tray) Run() {
	systray.Run(t.setupMenu, func() { close(t.quitCh) })
}

// setupMenu is called when systray is ready
func (t *Tray) setupMenu() {
	t.mu.Lock()
	defer t.mu.Unlock()

	systray.SetTitle("MouseShare")
	systray.SetTooltip(t.tooltip)
	systray.SetIcon(t.icon)

	for _, menuItem := range t.items {
		if menuItem == nil {
			systray.AddSeparator()
			continue
		}

		item := systray.AddMenuItem(menuItem.Title, "")
		menuItem.item = item
		if menuItem.Disabled {
			item.Disable()
		}

		// Handle clicks in goroutine
		if menuItem.Callback != nil {
			go func(mi *MenuItem) {
				for {
					select {
					case <-mi.item.ClickedCh:
						mi.Callback()
					case <-t.quitCh:
						return
					}
				}
			}(menuItem)
		}
	}

	t.ready = true
}

// Stop stops the tray
func (t *Tray) Stop() {
	systray.Quit()
}
