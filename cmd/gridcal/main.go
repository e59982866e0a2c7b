package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/gridcal/gridcal/internal/clock"
	"github.com/gridcal/gridcal/internal/config"
	"github.com/gridcal/gridcal/internal/ics"
	"github.com/gridcal/gridcal/internal/logging"
	"github.com/gridcal/gridcal/internal/store"
	"github.com/gridcal/gridcal/internal/update"
)

func main() {
	configPath := flag.String("config", config.DefaultPath(), "path to the config file")
	importICS := flag.String("import-ics", "", "import events from an .ics file and exit")
	exportICS := flag.String("export-ics", "", "export all events to an .ics file and exit")
	flag.Parse()

	if err := run(*configPath, *importICS, *exportICS); err != nil {
		fmt.Fprintf(os.Stderr, "gridcal failed: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, importICS, exportICS string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		logger = zap.NewNop()
	}
	defer logger.Sync()

	ctx := context.Background()
	st, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	if importICS != "" {
		return runImport(ctx, st, importICS)
	}
	if exportICS != "" {
		return runExport(ctx, st, exportICS)
	}

	ticker := clock.NewTicker(time.Minute)
	ticker.Start()
	defer ticker.Stop()

	program := tea.NewProgram(
		update.NewModel(cfg, st, logger, ticker),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}

func openStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (store.Store, error) {
	switch cfg.Storage.Backend {
	case "sqlite":
		return store.OpenSQLite(ctx, cfg.Storage.Path, logger)
	default:
		return store.OpenFile(cfg.Storage.Path, logger)
	}
}

func runImport(ctx context.Context, st store.Store, path string) error {
	events, err := ics.ReadFile(path)
	if err != nil {
		return err
	}
	imported := 0
	for _, ev := range events {
		if _, err := st.Add(ctx, ev); err != nil {
			fmt.Fprintf(os.Stderr, "skipping %q: %v\n", ev.Title, err)
			continue
		}
		imported++
	}
	fmt.Printf("imported %d of %d events\n", imported, len(events))
	return nil
}

func runExport(ctx context.Context, st store.Store, path string) error {
	events, err := st.All(ctx)
	if err != nil {
		return err
	}
	if err := ics.WriteFile(path, events); err != nil {
		return err
	}
	fmt.Printf("exported %d events to %s\n", len(events), path)
	return nil
}
