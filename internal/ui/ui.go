// Package ui implements the Moordesk desktop window.
package ui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/moorlabs/moor"
	"github.com/moorlabs/moor/internal/netutil"
)

// statusPollInterval is how often the window re-probes the backend endpoint
// to refresh the status line.
const statusPollInterval = 2 * time.Second

// statusProbeTimeout bounds each status probe so a hung dial cannot stall
// the polling loop.
const statusProbeTimeout = time.Second

// UI is the main application window. It owns no backend state; it only
// renders reachability and routes the window-close event through the
// supervisor.
type UI struct {
	app    fyne.App
	window fyne.Window
	sup    *moor.Supervisor

	statusLabel *widget.Label
}

// New builds the main window around the given supervisor. The window-close
// event is intercepted to shut the backend down before the window goes away;
// the application-exit path in main calls Shutdown again, which is safe
// because the operation is idempotent.
func New(sup *moor.Supervisor) *UI {
	a := app.NewWithID("dev.moorlabs.moordesk")
	w := a.NewWindow("Moordesk")
	w.Resize(fyne.NewSize(420, 260))

	ui := &UI{
		app:         a,
		window:      w,
		sup:         sup,
		statusLabel: widget.NewLabel("backend: checking..."),
	}

	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Your name")
	greeting := widget.NewLabel("")
	greetBtn := widget.NewButton("Greet", func() {
		greeting.SetText(greet(nameEntry.Text))
	})

	w.SetContent(container.NewVBox(
		ui.statusLabel,
		widget.NewSeparator(),
		nameEntry,
		greetBtn,
		greeting,
	))

	w.SetCloseIntercept(func() {
		if err := sup.Shutdown(); err != nil {
			slog.Warn("backend shutdown on window close failed", "error", err)
		}
		w.Close()
	})

	go ui.pollStatus()
	return ui
}

// Run shows the window and blocks until the application exits.
func (ui *UI) Run() {
	ui.window.ShowAndRun()
}

// pollStatus keeps the status line in sync with backend reachability. It
// probes the endpoint directly rather than asking the supervisor, which
// exposes no status query.
func (ui *UI) pollStatus() {
	ticker := time.NewTicker(statusPollInterval)
	defer ticker.Stop()
	for range ticker.C {
		text := "backend: unreachable"
		if netutil.Probe(context.Background(), ui.sup.Endpoint(), statusProbeTimeout) {
			text = "backend: running"
		}
		fyne.Do(func() {
			ui.statusLabel.SetText(text)
		})
	}
}

func greet(name string) string {
	if name == "" {
		name = "stranger"
	}
	return fmt.Sprintf("Hello, %s! Greetings from Moordesk.", name)
}
