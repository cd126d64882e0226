package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tagsearch/internal/autocomplete"
	"tagsearch/internal/config"
	"tagsearch/internal/logging"
	"tagsearch/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// rootFlags are shared by every command
type rootFlags struct {
	configPath string
	endpoint   string
	theme      string
	logFile    string
	debug      bool
	jsonLogs   bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   config.AppName,
		Short: "Interactive tag search with autocomplete",
		Long: `tagsearch is a comma-separated tag input that suggests tags as you type.

The tag under the cursor is looked up on the autocomplete endpoint. Use the
arrow keys to highlight a suggestion, tab to complete the first one and enter
to insert the highlighted one. The final text is printed on exit.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd.Context(), flags)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default: ./tagsearch.yaml or ~/.config/tagsearch/config.yaml)")
	pf.StringVar(&flags.endpoint, "endpoint", "", "autocomplete endpoint URL")
	pf.StringVar(&flags.theme, "theme", "", "catppuccin flavor (latte, frappe, macchiato, mocha)")
	pf.StringVar(&flags.logFile, "log-file", "", "log file path")
	pf.BoolVar(&flags.debug, "debug", false, "enable debug logging")
	pf.BoolVar(&flags.jsonLogs, "json-logs", false, "write logs as JSON")

	cmd.AddCommand(newQueryCmd(flags))
	return cmd
}

// loadConfig resolves the config file, applies flag overrides and validates
// the result. It returns the path that was loaded, or "" for defaults.
func loadConfig(flags *rootFlags) (*config.Config, string, error) {
	path := flags.configPath
	if path == "" {
		path = config.FindPath()
	}

	cfg := config.DefaultConfig()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, "", errors.Wrap(err, "loading config")
		}
		cfg = loaded
	}

	if flags.endpoint != "" {
		cfg.Endpoint = flags.endpoint
	}
	if flags.theme != "" {
		cfg.Theme = flags.theme
	}
	if flags.logFile != "" {
		cfg.LogFile = flags.logFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", errors.Wrap(err, "invalid config")
	}
	config.SetGlobal(cfg)
	return cfg, path, nil
}

func newLogger(cfg *config.Config, flags *rootFlags) (*zap.Logger, error) {
	logger, err := logging.New(logging.Options{
		Path:  cfg.LogPath(),
		Debug: flags.debug,
		JSON:  flags.jsonLogs,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize logger")
	}
	return logger, nil
}

func newClient(cfg *config.Config, logger *zap.Logger) (*autocomplete.Client, error) {
	return autocomplete.NewClient(autocomplete.Options{
		Endpoint:  cfg.Endpoint,
		Limit:     cfg.Limit,
		Timeout:   cfg.Timeout,
		RateLimit: cfg.RateLimit,
		UserAgent: cfg.UserAgent,
		Logger:    logger.Named("autocomplete"),
	})
}

func runInteractive(ctx context.Context, flags *rootFlags) error {
	cfg, path, err := loadConfig(flags)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg, flags)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	client, err := newClient(cfg, logger)
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var watcher *config.Watcher
	if path != "" {
		watcher, err = config.NewWatcher(path)
		if err != nil {
			// Live reload is optional
			logger.Warn("config watcher unavailable", zap.String("path", path), zap.Error(err))
			watcher = nil
		} else {
			watcher.Start()
		}
	}

	logger.Info("starting",
		zap.String("endpoint", cfg.Endpoint),
		zap.String("config", path),
		zap.String("theme", cfg.Theme),
	)

	model := tui.NewModel(tui.ModelOptions{
		Fetcher: client,
		Config:  cfg,
		Logger:  logger.Named("tui"),
		Watcher: watcher,
		Context: ctx,
	})

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	final, err := p.Run()
	if m, ok := final.(tui.Model); ok {
		m.Close()
		if err == nil {
			fmt.Println(m.Value())
		}
	} else {
		model.Close()
	}
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return errors.Wrap(err, "running program")
	}
	return nil
}
