package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/emberdeep/emberdeep-resume/internal/saves"
)

// Message types for async operations
type (
	// CatalogLoadedMsg delivers the built save catalog.
	CatalogLoadedMsg struct {
		Catalog *saves.Catalog
	}

	// TickMsg is sent periodically for spinner animation
	TickMsg time.Time
)

// loadCatalogCmd builds the catalog in the background. Cancelling ctx
// delivers whatever was decoded so far.
func loadCatalogCmd(ctx context.Context, dir string) tea.Cmd {
	return func() tea.Msg {
		return CatalogLoadedMsg{Catalog: <-saves.BuildAsync(ctx, dir)}
	}
}

// tickCmd creates a ticker for spinner animation
func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
