package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/spf13/pflag"

	"github.com/trafficlab/route-planner/pkg/config"
	"github.com/trafficlab/route-planner/pkg/logging"
	"github.com/trafficlab/route-planner/pkg/model"
	"github.com/trafficlab/route-planner/pkg/output"
	"github.com/trafficlab/route-planner/pkg/roadnet"
	"github.com/trafficlab/route-planner/pkg/route"
	"github.com/trafficlab/route-planner/pkg/view"
	"github.com/trafficlab/route-planner/pkg/watcher"
	"github.com/trafficlab/route-planner/pkg/web"
)

func main() {
	f := pflag.NewFlagSet("route-planner", pflag.ExitOnError)
	f.String("network", "", "Path to a JSON network file (default: built-in baseline)")
	f.String("from", "", "Source location for a one-shot route query")
	f.String("to", "", "Destination location for a one-shot route query")
	f.Bool("web", false, "Start the web server instead of a one-shot query")
	f.Int("port", 8080, "Port for the web server (only used with --web)")
	f.Bool("watch", false, "Reload the network file on change (only used with --web)")
	f.Bool("open", true, "Open the browser when the web server starts")
	f.Int("history-size", 10, "Number of routes kept in the history log")
	f.String("verbosity", "", "Log level: debug, info, warn, error")
	if err := f.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	applyVerbosity(cfg.Verbosity)

	network, err := loadNetwork(cfg.Network)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := model.NewStore(network)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	warnIfDisconnected(store)

	if cfg.WebMode {
		runWebServer(cfg, store, network)
		return
	}

	runQuery(cfg, store)
}

func applyVerbosity(verbosity string) {
	switch verbosity {
	case "debug":
		logging.SetLevel(slog.LevelDebug)
	case "warn":
		logging.SetLevel(slog.LevelWarn)
	case "error":
		logging.SetLevel(slog.LevelError)
	case "", "info":
		// default
	default:
		fmt.Fprintf(os.Stderr, "Unknown verbosity %q, using info\n", verbosity)
	}
}

func loadNetwork(path string) (model.Graph, error) {
	if path == "" {
		return roadnet.Default(), nil
	}
	return roadnet.Load(path)
}

// warnIfDisconnected logs when some locations cannot reach each other.
// A disconnected network is valid; queries across components simply
// report no route.
func warnIfDisconnected(store *model.Store) {
	g, version := store.Snapshot()
	components := view.Build(g, version).Components()
	if len(components) > 1 {
		logging.Warn("network is not fully connected", "components", len(components))
	}
}

func runQuery(cfg *config.Config, store *model.Store) {
	if cfg.From == "" || cfg.To == "" {
		fmt.Fprintln(os.Stderr, "Error: --from and --to are required (or use --web)")
		os.Exit(1)
	}

	g, _ := store.Snapshot()

	start := time.Now()
	res, err := route.ShortestPath(g, cfg.From, cfg.To)
	elapsed := time.Since(start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	output.PrintRouteReport(g, cfg.From, cfg.To, res, elapsed)
	fmt.Println()
	output.PrintNetworkSummary(g)

	if !res.Found {
		os.Exit(2)
	}
}

func runWebServer(cfg *config.Config, store *model.Store, baseline model.Graph) {
	server := web.NewServer(store, baseline, cfg.HistorySize)

	if cfg.Watch && cfg.Network != "" {
		if err := startNetworkWatcher(cfg.Network, server); err != nil {
			logging.Warn("failed to watch network file", "error", err)
		}
	}

	if cfg.OpenBrowser {
		url := fmt.Sprintf("http://localhost:%d", cfg.Port)
		go func() {
			// Give the listener a moment before pointing a browser at it.
			time.Sleep(500 * time.Millisecond)
			openBrowser(url)
		}()
	}

	if err := server.Start(cfg.Port); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// startNetworkWatcher reloads the network file on change and applies it
// to the store through the server, so the version bump and SSE
// notification happen together.
func startNetworkWatcher(path string, server *web.Server) error {
	fw, err := watcher.NewFileWatcher(path)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if err := fw.Start(ctx); err != nil {
		return err
	}

	debouncer := watcher.NewDebouncer(fw.Events(), 200*time.Millisecond, 2*time.Second)
	debouncer.Start(ctx)

	go func() {
		for event := range debouncer.Output() {
			network, err := roadnet.Load(event.Path)
			if err != nil {
				logging.Error("failed to reload network file", "path", event.Path, "error", err)
				continue
			}
			if err := server.ApplyNetwork(network); err != nil {
				logging.Error("failed to apply reloaded network", "error", err)
				continue
			}
			logging.Info("network file reloaded", "path", event.Path)
		}
	}()

	return nil
}

func openBrowser(url string) {
	var cmd string
	var args []string

	switch runtime.GOOS {
	case "darwin":
		cmd = "open"
		args = []string{url}
	case "linux":
		cmd = "xdg-open"
		args = []string{url}
	case "windows":
		cmd = "cmd"
		args = []string{"/c", "start", url}
	default:
		logging.Warn("cannot open browser on platform", "platform", runtime.GOOS)
		return
	}

	if err := exec.Command(cmd, args...).Start(); err != nil {
		logging.Warn("failed to open browser", "error", err)
	}
}
