package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/handiism/lux-downloader/internal/config"
	"github.com/handiism/lux-downloader/internal/download"
	ioutils "github.com/handiism/lux-downloader/internal/io"
	"github.com/handiism/lux-downloader/internal/logging"
	"github.com/handiism/lux-downloader/internal/lux"
	"github.com/handiism/lux-downloader/internal/model"
	"github.com/handiism/lux-downloader/internal/prompt"
	"github.com/handiism/lux-downloader/internal/runner"
	"github.com/handiism/lux-downloader/internal/selection"
	"github.com/handiism/lux-downloader/internal/tui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// View selects the console the download pipeline writes to.
type View int

const (
	// ViewText prints status lines to stdout.
	ViewText View = iota
	// ViewLive shows a live Bubble Tea view.
	ViewLive
)

// ExitError carries the process exit status of a failed run.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

type options struct {
	configPath string
	tool       string
	output     string
	logLevel   string
	dryRun     bool
	saveConfig bool
}

// app holds one command invocation. The constructors are fields so tests
// can swap the subprocess runner and the prompts.
type app struct {
	view View
	opts options

	newRunner   func(dir string) runner.Runner
	newPrompter func(in io.Reader, out io.Writer) selection.Prompter
	newLogger   func(level, file string) (*zap.Logger, error)
}

func newApp(view View) *app {
	return &app{
		view: view,
		newRunner: func(dir string) runner.Runner {
			return runner.NewExec(dir)
		},
		newPrompter: func(in io.Reader, out io.Writer) selection.Prompter {
			return prompt.New(in, out)
		},
		newLogger: logging.New,
	}
}

// NewRootCommand returns the root command of the named binary.
func NewRootCommand(name string, view View) *cobra.Command {
	return newApp(view).command(name)
}

func (a *app) command(name string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name + " [URL or BV code]",
		Short: "Pick a video, choose a stream and download it with lux",
		Example: name + " https://www.bilibili.com/video/BV1xx411c7mD\n" +
			name + " --output ~/Videos --tool /usr/local/bin/lux",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          a.run,
	}

	flags := cmd.Flags()
	flags.StringVarP(&a.opts.configPath, "config", "c", config.DefaultPath(), "Path to config file")
	flags.StringVar(&a.opts.tool, "tool", "", "lux executable (overrides config)")
	flags.StringVarP(&a.opts.output, "output", "o", "", "Output directory (overrides config)")
	flags.StringVar(&a.opts.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	flags.BoolVar(&a.opts.dryRun, "dry-run", false, "Stop after confirmation and print the plan")
	flags.BoolVar(&a.opts.saveConfig, "save-config", false, "Write the effective settings to the config file and exit")

	return cmd
}

// loadSettings reads the config file and applies flag overrides.
func (a *app) loadSettings() (*config.Settings, error) {
	settings, err := config.Load(a.opts.configPath)
	if err != nil {
		return nil, err
	}

	if a.opts.tool != "" {
		settings.ToolPath = a.opts.tool
	}
	if a.opts.output != "" {
		settings.OutputDir = a.opts.output
	}
	if a.opts.logLevel != "" {
		settings.LogLevel = a.opts.logLevel
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return settings, nil
}

func (a *app) run(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	settings, err := a.loadSettings()
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}

	if a.opts.saveConfig {
		if a.opts.configPath == "" {
			return &ExitError{Code: 1, Err: errors.New("no config path to save to")}
		}
		if err := settings.Save(a.opts.configPath); err != nil {
			return &ExitError{Code: 1, Err: fmt.Errorf("failed to save settings: %w", err)}
		}
		fmt.Fprintf(out, "Settings saved to %s\n", a.opts.configPath)
		return nil
	}

	logger, err := a.newLogger(settings.LogLevel, settings.LogFile)
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}
	logging.SetLogger(logger)
	defer func() {
		_ = logger.Sync()
		logging.SetLogger(nil)
	}()

	ctx := logging.NewContext(cmd.Context(), zap.String("run_id", uuid.NewString()))
	log := logging.FromContext(ctx)

	outputDir, err := ioutils.PrepareOutputDir(settings.OutputDir)
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}
	log.Debug("Settings loaded",
		zap.String("config", a.opts.configPath),
		zap.String("tool", settings.ToolPath),
		zap.String("output_dir", outputDir),
		zap.Int("queue_size", settings.QueueSize),
	)

	client := lux.NewClient(settings.ToolPath, a.newRunner(outputDir))

	flow := selection.NewFlow(a.newPrompter(cmd.InOrStdin(), out), client, settings.DefaultThreads)
	if len(args) > 0 {
		flow.Source = args[0]
	}

	plan, err := flow.Run(ctx)
	var parseErr *lux.ParseError
	switch {
	case errors.As(err, &parseErr):
		fmt.Fprintln(out, "Error getting info")
		fmt.Fprintln(out, string(parseErr.Stdout))
		return &ExitError{Code: 1}
	case errors.Is(err, selection.ErrCancelled):
		fmt.Fprintln(out, "Download cancelled")
		return nil
	case errors.Is(err, prompt.ErrInterrupted), errors.Is(err, context.Canceled):
		return &ExitError{Code: 130, Err: err}
	case err != nil:
		return &ExitError{Code: 1, Err: err}
	}

	if a.opts.dryRun {
		printPlan(out, plan)
		return nil
	}

	switch a.view {
	case ViewLive:
		err = tui.Run(ctx, settings, client, plan)
	default:
		err = download.NewManager(settings, client, download.NewTextConsole(out)).StartDownloads(ctx, plan)
	}

	switch {
	case errors.Is(err, tui.ErrStopped), errors.Is(err, context.Canceled):
		fmt.Fprintln(errOut, "Download cancelled.")
		return &ExitError{Code: 130}
	case err != nil:
		return &ExitError{Code: 1, Err: err}
	}
	return nil
}

func printPlan(w io.Writer, plan *model.Plan) {
	fmt.Fprintf(w, "[Dry run - not downloading]\n")
	fmt.Fprintf(w, "Source: %s\n", plan.Source)
	fmt.Fprintf(w, "Threads: %s\n", plan.Threads)
	for i, job := range plan.Jobs {
		fmt.Fprintf(w, "%d. %q (%s)\n", model.Selector(i), job.Title, job.Stream)
	}
}

// Execute runs the named command with the process arguments and returns
// the exit status. SIGINT and SIGTERM cancel the run context.
func Execute(name string, view View) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := NewRootCommand(name, view)
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Err != nil && exitErr.Code != 130 {
			fmt.Fprintf(os.Stderr, "Error: %v\n", exitErr.Err)
		}
		return exitErr.Code
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	fmt.Fprintf(os.Stderr, "Run '%s --help' for usage.\n", name)
	return 1
}
