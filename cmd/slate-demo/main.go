// Command slate-demo shows the toolkit working end to end: a three-pane
// layout with draggable splitters, a command bar that overflows into a
// popup, a collapsible sidebar, and stylesheet-driven colors.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/odvcencio/slate/pkg/backend"
	"github.com/odvcencio/slate/pkg/backend/sim"
	tcellhost "github.com/odvcencio/slate/pkg/backend/tcell"
	"github.com/odvcencio/slate/pkg/config"
	"github.com/odvcencio/slate/pkg/container"
	"github.com/odvcencio/slate/pkg/layout"
	"github.com/odvcencio/slate/pkg/logging"
	"github.com/odvcencio/slate/pkg/metric"
	"github.com/odvcencio/slate/pkg/stylesheet"
	"github.com/odvcencio/slate/pkg/telemetry"
	"github.com/odvcencio/slate/pkg/widget"
)

// Version information, set via ldflags during build.
var (
	version = "1.0.0-dev"
	commit  = "unknown"
)

var (
	configPath  string
	showVersion bool
)

const demoStyles = `
.toolbar { background-color: #2d2d30; }
.sidebar { background-color: #252526; }
.statusbar { background-color: #007acc; color: #ffffff; }
.primary { background-color: #0e639c; color: #ffffff; }
.primary:hover { background-color: #1177bb; }
.danger { background-color: #a1260d; color: #ffffff; }
`

func main() {
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("slate-demo %s (%s)\n", version, commit)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "slate-demo:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var hub *telemetry.Hub
	if cfg.Telemetry.Enabled {
		hub = telemetry.NewHub()
		defer hub.Close()

		if home, err := os.UserHomeDir(); err == nil {
			logger, err := logging.NewLogger(filepath.Join(home, ".slate", "logs"), "")
			if err == nil {
				logger.Attach(hub)
				defer logger.Close()
			}
		}
	}

	styles := stylesheet.New(hub)
	styles.Load(demoStyles, "builtin")
	for _, path := range cfg.Styles.Paths {
		if err := styles.LoadFile(path); err != nil {
			return err
		}
	}
	for class, props := range cfg.Styles.Inline {
		styles.Define(class, props)
	}

	var watcher *stylesheet.Watcher
	if cfg.Styles.Watch && len(cfg.Styles.Paths) > 0 {
		watcher, err = stylesheet.NewWatcher(styles, hub)
		if err != nil {
			return err
		}
		defer watcher.Close()
		for _, path := range cfg.Styles.Paths {
			if err := watcher.Watch(path); err != nil {
				return err
			}
		}
	}

	host, err := newHost(cfg)
	if err != nil {
		return err
	}
	defer host.Destroy()

	c := container.New(host, container.Config{
		Title:   cfg.UI.Title,
		Styles:  styles,
		Factory: widget.NewFactory(hub),
		Hub:     hub,
		Scale:   cfg.UI.Scale,
	})
	if cfg.UI.Background != "" {
		c.SetProp("background-color", cfg.UI.Background)
	}
	defer c.Destroy()

	buildUI(c, styles)
	return c.Run()
}

// newHost picks the backend from config. The sim host paints one frame
// and exits; it exists for headless smoke runs.
func newHost(cfg *config.Config) (backend.Host, error) {
	if cfg.UI.Backend == "sim" {
		return sim.New(120, 40), nil
	}
	return tcellhost.New()
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromPath(configPath)
	}
	return config.Load()
}

// buildUI assembles the demo: toolbar row, sidebar / editor / inspector
// columns with splitters, and a status bar sized by platform metric.
func buildUI(c *container.Container, styles *stylesheet.Registry) {
	root := c.CreateRootLayout(3, 3)
	root.SetRow(0, layout.FromMetric(metric.Toolbar), false, layout.Fixed(0))
	root.SetRow(1, layout.Fill(1), false, layout.Fixed(40))
	root.SetRow(2, layout.FromMetric(metric.StatusBar), false, layout.Fixed(0))
	root.SetCol(0, layout.Fixed(24), true, layout.Fixed(12))
	root.SetCol(1, layout.Fill(1), false, layout.Fixed(20))
	root.SetCol(2, layout.Percentage(25), true, layout.Fixed(10))

	root.SetCellName(1, 0, "sidebar")
	root.SetCellName(1, 1, "editor")
	root.SetCellName(1, 2, "inspector")

	buildToolbar(c, root, styles)
	buildSidebar(root, styles)
	buildEditor(root, styles)
	buildStatusBar(root, styles)
}

func buildToolbar(c *container.Container, root *layout.Layout, styles *stylesheet.Registry) {
	bar := root.Cell(0, 1)
	styles.AddClass(bar.Store(), "toolbar")
	bar.SetStackMode(layout.StackCommandBar)

	for _, name := range []string{"New", "Open", "Save", "Build", "Run", "Debug", "Profile"} {
		b := widget.NewButton(name)
		b.Store().Set("width", "12")
		bar.AddWidget(b)
	}

	toggle := widget.NewButton("Sidebar")
	toggle.Store().Set("width", "12")
	toggle.OnClick(func() {
		if root.IsColumnCollapsed(0) {
			root.RestoreColumn(0)
		} else {
			root.CollapseColumn(0)
		}
	})
	bar.AddWidget(toggle)

	quit := widget.NewButton("Quit")
	quit.Store().Set("width", "12")
	styles.AddClass(quit.Store(), "danger")
	quit.OnClick(c.Close)
	bar.AddWidget(quit)
}

func buildSidebar(root *layout.Layout, styles *stylesheet.Registry) {
	sidebar := root.CellNamed("sidebar")
	styles.AddClass(sidebar.Store(), "sidebar")
	sidebar.EnableScroll(true)
	sidebar.SetStackMode(layout.StackVertical)

	for i := 1; i <= 12; i++ {
		item := widget.NewButton(fmt.Sprintf("File %d", i))
		item.Store().Set("height", "3")
		sidebar.AddWidget(item)
	}
}

func buildEditor(root *layout.Layout, styles *stylesheet.Registry) {
	editor := root.CellNamed("editor")
	editor.SetStackMode(layout.StackTabbed)
	for _, name := range []string{"main.go", "layout.go", "cell.go"} {
		tab := widget.NewLabel("// " + name)
		editor.AddWidget(tab)
	}
	editor.SetActiveTab(0)

	inspector := root.CellNamed("inspector")
	inspector.SetStackMode(layout.StackVertical)
	apply := widget.NewButton("Apply")
	styles.AddClass(apply.Store(), "primary")
	apply.Store().Set("height", "3")
	inspector.AddWidget(apply)
	reset := widget.NewButton("Reset")
	reset.Store().Set("height", "3")
	inspector.AddWidget(reset)
}

func buildStatusBar(root *layout.Layout, styles *stylesheet.Registry) {
	status := root.Cell(2, 1)
	styles.AddClass(status.Store(), "statusbar")
	status.AddWidget(widget.NewLabel("Ready"))
}
