package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/sapra/internal/state"
	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the dashboard over store until the user quits or ctx is canceled.
func Run(ctx context.Context, store *state.Store, opts ...Option) error {
	p := tea.NewProgram(New(ctx, store, opts...),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("dashboard error: %w", err)
	}
	return nil
}
