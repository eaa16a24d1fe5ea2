package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/iammorganparry/focus/internal/app"
	"github.com/iammorganparry/focus/internal/config"
	"github.com/iammorganparry/focus/internal/notify"
	"github.com/iammorganparry/focus/internal/session"
	"github.com/iammorganparry/focus/internal/stats"
	"github.com/iammorganparry/focus/internal/store"
	"github.com/iammorganparry/focus/internal/tasks"
	"github.com/iammorganparry/focus/internal/tui"
)

var Version = "dev"

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "focus",
		Short:   "Focus - tasks and a single focus timer",
		Version: Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(configPath)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default ~/.focus/config.yaml)")

	rootCmd.AddCommand(tasksCmd(&configPath))
	rootCmd.AddCommand(statsCmd(&configPath))
	rootCmd.AddCommand(configCmd(&configPath))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// env is everything a command needs once config and storage are open.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	tasks  *tasks.Store
	close  func()
}

func openEnv(configPath string) (*env, error) {
	if configPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("locate config: %w", err)
		}
		configPath = p
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	// The terminal belongs to the UI, so logs go to a file.
	logFile, err := openLogFile(cfg.LogPath())
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	persister, db, err := store.OpenBackend(cfg.Storage.Backend, cfg.StoragePath())
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("open storage: %w", err)
	}
	closeAll := func() {
		if db != nil {
			db.Close()
		}
		logFile.Close()
	}

	st, err := tasks.New(persister, logger)
	if err != nil {
		closeAll()
		return nil, err
	}

	return &env{cfg: cfg, logger: logger, tasks: st, close: closeAll}, nil
}

func openLogFile(path string) (io.WriteCloser, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

func notifierFor(cfg *config.Config) session.Notifier {
	var n notify.Multi
	if cfg.Notifications.Sound {
		n = append(n, notify.NewBell(os.Stdout))
	}
	if cfg.Notifications.Desktop {
		n = append(n, notify.NewDesktop(stats.SessionMinutes(session.DefaultDuration)))
	}
	if len(n) == 0 {
		return notify.Nop{}
	}
	return n
}

func runTUI(configPath string) error {
	e, err := openEnv(configPath)
	if err != nil {
		return err
	}
	defer e.close()

	clock := tui.NewClock()
	engine := session.NewEngine(e.tasks, clock, notifierFor(e.cfg), session.DefaultDuration, e.logger)
	a := app.New(e.tasks, engine, e.logger)

	e.logger.Info("focus starting", "version", Version, "storage", e.cfg.Storage.Backend, "tasks", e.tasks.Len())

	p := tea.NewProgram(tui.NewRootModel(a, clock), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
