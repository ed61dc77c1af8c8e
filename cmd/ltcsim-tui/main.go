package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/homecare-ojt/ltcsim/internal/calculation"
	"github.com/homecare-ojt/ltcsim/internal/config"
	"github.com/homecare-ojt/ltcsim/internal/domain"
	"github.com/homecare-ojt/ltcsim/internal/store"
	"github.com/homecare-ojt/ltcsim/internal/tui"
)

func main() {
	settings, err := config.LoadSettings()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	// An optional worksheet file seeds the editor
	ws := domain.Worksheet{}
	if len(os.Args) > 1 {
		loaded, err := config.NewInputParser().LoadFromFile(os.Args[1])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		ws = *loaded
	}

	tariff, err := config.NewTariffParser().Load(settings.TariffFile)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	// The editor still runs when the store is unavailable; saving is disabled
	var sims store.SimulationStore
	st, err := store.Open(context.Background(), settings)
	if err == nil {
		defer st.Close()
		sims = st
	}

	p := tea.NewProgram(
		tui.NewModel(calculation.NewEngine(tariff), ws, sims),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
