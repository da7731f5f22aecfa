package cli

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/truthlens/truthlens/internal/api"
	"github.com/truthlens/truthlens/internal/config"
	"github.com/truthlens/truthlens/internal/report"
	"github.com/truthlens/truthlens/internal/submission"
)

func newWatchCommand() *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch <directory>",
		Short: "Watch a directory and analyze new images",
		Long: `Watch a directory for new image files and analyze each one as it
appears. Useful for screening a download folder or a camera import
directory. Writes in-progress files are debounced until they settle.

Press Ctrl+C to stop.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(args[0], debounce)
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", 0, "settle time before submitting a new file (overrides config)")

	return cmd
}

// watcher drives the directory watch loop. Each new image is debounced,
// validated and submitted; results print as one summary line per file.
type watcher struct {
	client   *api.Client
	cfg      *config.Config
	debounce time.Duration

	mu      sync.Mutex
	pending map[string]*time.Timer
}

func runWatch(dir string, debounce time.Duration) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if debounce <= 0 {
		debounce = cfg.Watch.Debounce
	}

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("cannot watch %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("cannot watch %s: not a directory", dir)
	}

	if err := preflight(client, 5*time.Second); err != nil {
		return err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = fsw.Close() }()

	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w := &watcher{
		client:   client,
		cfg:      cfg,
		debounce: debounce,
		pending:  make(map[string]*time.Timer),
	}

	color.New(color.Bold).Printf("watching %s", dir)
	fmt.Printf(" (debounce %v, server %s)\n", debounce, client.BaseURL())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			fmt.Println("\nstopped")
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				w.schedule(event.Name)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			color.Red("watch error: %v", err)
		}
	}
}

// schedule queues a file for analysis after the debounce window. Repeated
// writes to the same file reset the timer so half-copied files settle first.
func (w *watcher) schedule(path string) {
	if !likelyImage(path) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[path]; ok {
		timer.Reset(w.debounce)
		return
	}
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		w.analyze(path)
	})
}

func (w *watcher) analyze(path string) {
	store := submission.NewStore()
	sub, _, err := store.Select(path)
	if err != nil {
		color.Yellow("skipped %s: %v", filepath.Base(path), err)
		return
	}

	f, err := os.Open(sub.Path) // #nosec G304 -- file from the watched directory
	if err != nil {
		color.Red("failed %s: %v", sub.Filename, err)
		return
	}
	defer func() { _ = f.Close() }()

	ctx, cancel := contextWithOptionalTimeout(w.cfg.Server.Timeout)
	defer cancel()

	result, err := w.client.Analyze(ctx, sub.Filename, f)
	if err != nil {
		color.Red("failed %s: %v", sub.Filename, err)
		return
	}

	printWatchResult(sub, result)
}

func printWatchResult(sub *submission.Submission, result *api.AnalysisResponse) {
	level := report.ParseRiskLevel(result.Risk.RiskLevel)
	score := int(math.Round(result.Risk.OverallScore))

	var paint *color.Color
	switch level {
	case report.RiskLow:
		paint = color.New(color.FgGreen)
	case report.RiskMedium:
		paint = color.New(color.FgYellow)
	case report.RiskHigh:
		paint = color.New(color.FgHiRed)
	case report.RiskCritical:
		paint = color.New(color.FgRed, color.Bold)
	default:
		paint = color.New(color.FgWhite)
	}

	fmt.Printf("%s (%s): ", sub.Filename, sub.SizeLabel)
	paint.Printf("%s %d/100", level.String(), score)
	fmt.Printf(" - %s\n", result.Verdict.Verdict)

	if isVerbose() {
		for _, flag := range result.Risk.AllFlags {
			fmt.Printf("    %s\n", flag)
		}
	}
}

// likelyImage is a cheap extension filter; the submission store does the
// real MIME sniff after the debounce.
func likelyImage(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".tif", ".tiff":
		return true
	}
	return false
}
