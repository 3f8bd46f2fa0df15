package tui

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive chat session and blocks until the user quits.
func Run(cfg Config) error {
	if cfg.Orchestrator == nil {
		return fmt.Errorf("orchestrator is required")
	}
	if cfg.UserID == "" {
		return fmt.Errorf("user ID is required")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	p := tea.NewProgram(NewModel(cfg), tea.WithAltScreen())

	go func() {
		<-sigChan
		p.Quit()
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat session failed: %w", err)
	}
	return nil
}
