package main

import (
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/invoi/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/invoi/internal/config"
	"github.com/MrJamesThe3rd/invoi/internal/editor"
	"github.com/MrJamesThe3rd/invoi/internal/export"
	"github.com/MrJamesThe3rd/invoi/internal/invoice/store"
	"github.com/MrJamesThe3rd/invoi/internal/preview"
	"github.com/MrJamesThe3rd/invoi/internal/schedule"
	"github.com/MrJamesThe3rd/invoi/internal/storage"
)

type model struct {
	editor        *editor.Editor
	exportService *export.Service
	exportDir     string

	currentView View

	editorView view.EditorModel
	exportView view.ExportModel
}

type View int

const (
	ViewEditor View = 0
	ViewExport View = 1
)

type app struct {
	model   model
	editor  *editor.Editor
	backend *storage.Backend
	logFile io.Closer
}

func newApp() *app {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logFile := setupLogging(cfg.App.LogFile)

	ctx, cancel := view.StorageCtx()
	defer cancel()

	status := ""

	backend, err := storage.Open(ctx, cfg)
	if err != nil {
		slog.Warn("storage unavailable, keeping the invoice in memory", "driver", cfg.Storage.Driver, "error", err)

		backend = storage.Memory()
		status = "Storage unavailable: changes are kept in memory only."
	}

	link := cfg.App.ShareBaseURL
	if len(os.Args) > 1 {
		link = os.Args[1]
	}

	loc, err := editor.NewLocation(link)
	if err != nil {
		slog.Error("invalid share link", "link", link, "error", err)
		os.Exit(1)
	}

	ed := editor.New(store.New(backend), loc, schedule.Timers{},
		editor.WithSaveDelay(cfg.Editor.SaveDelay),
		editor.WithSaveTimeout(cfg.Editor.SaveTimeout),
	)

	surface := preview.NewSurface(preview.A4, cfg.Preview.Margin)
	expSvc := export.NewService(preview.A4)

	return &app{
		model: model{
			editor:        ed,
			exportService: expSvc,
			exportDir:     cfg.Export.Dir,
			currentView:   ViewEditor,
			editorView:    view.NewEditorModel(ed, loc, surface, status),
		},
		editor:  ed,
		backend: backend,
		logFile: logFile,
	}
}

// setupLogging sends logs to path, or drops them, so they never draw over the UI.
func setupLogging(path string) io.Closer {
	if path == "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		slog.Error("failed to open log file", "path", path, "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(f, nil)))

	return f
}

// shutdown writes any pending save and releases storage.
func (a *app) shutdown() {
	ctx, cancel := view.StorageCtx()
	defer cancel()

	a.editor.Flush(ctx)
	a.editor.Close()

	if err := a.backend.Close(); err != nil {
		slog.Error("failed to close storage", "error", err)
	}

	if a.logFile != nil {
		a.logFile.Close()
	}
}

func (m model) Init() tea.Cmd {
	return m.editorView.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.currentView == ViewEditor {
				return m, tea.Quit
			}
		case "ctrl+e":
			if m.currentView == ViewEditor {
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.exportService, m.editor, m.exportDir)

				return m, m.exportView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewEditor
		return m, nil
	}

	// The editor keeps tracking the window size while exporting.
	if _, ok := msg.(tea.WindowSizeMsg); ok && m.currentView != ViewEditor {
		newModel, _ := m.editorView.Update(msg)
		m.editorView = newModel.(view.EditorModel)
	}

	switch m.currentView {
	case ViewEditor:
		var newModel tea.Model
		newModel, cmd = m.editorView.Update(msg)
		m.editorView = newModel.(view.EditorModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewEditor:
		return m.editorView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

func main() {
	a := newApp()

	p := tea.NewProgram(a.model, tea.WithAltScreen())
	_, err := p.Run()

	a.shutdown()

	if err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
