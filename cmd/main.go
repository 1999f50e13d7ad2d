// MouseShare companion
// Receives keyboard and mouse events from a paired machine over TCP and
// replays them as local input, handing control back at the screen edge.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"mouseshare/internal/autostart"
	"mouseshare/internal/config"
	"mouseshare/internal/input"
	"mouseshare/internal/logging"
	"mouseshare/internal/protocol"
)

var version = "0.3.0"

// flags holds command-line overrides for the config file.
type flags struct {
	configPath string
	host       string
	port       int
	edge       string
	threshold  int
	poll       bool
	screen     string
	status     string
	tray       bool
	debug      bool
	jsonLogs   bool
}

func main() {
	var f flags

	rootCmd := &cobra.Command{
		Use:           "mouseshare",
		Short:         "Replay keyboard and mouse input received from a paired machine",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompanion(cmd, &f)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&f.configPath, "config", "c", "", "Config file (default: per-user config directory)")
	pf.BoolVar(&f.debug, "debug", false, "Enable debug logging")
	pf.BoolVar(&f.jsonLogs, "json-logs", false, "Always log JSON lines")

	fl := rootCmd.Flags()
	fl.StringVar(&f.host, "host", "", "Source machine address")
	fl.IntVarP(&f.port, "port", "p", 0, "Source machine port")
	fl.StringVar(&f.edge, "edge", "", "Handback edge: left, right, top or bottom")
	fl.IntVar(&f.threshold, "threshold", 0, "Handback distance from the edge in pixels")
	fl.BoolVar(&f.poll, "poll", false, "Also poll the real pointer position for handback")
	fl.StringVar(&f.screen, "screen", "", "Screen size override, e.g. 2560x1440")
	fl.StringVar(&f.status, "status", "", "Serve the status API on this address, e.g. 127.0.0.1:9877")
	fl.BoolVar(&f.tray, "tray", false, "Show a system tray icon")

	rootCmd.AddCommand(
		installCmd(&f),
		uninstallCmd(),
		versionCmd(),
		keysCmd(&f),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "mouseshare:", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies any flags the user set.
func loadConfig(cmd *cobra.Command, f *flags) (*config.Manager, *config.Config, error) {
	logging.Setup(os.Stderr, logging.Options{Debug: f.debug, JSON: f.jsonLogs})

	mgr, err := config.NewManager(f.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}
	if err := mgr.Load(); err != nil {
		return nil, nil, err
	}

	cfg := mgr.Get()
	if err := applyFlags(cmd, f, cfg); err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	if cfg.Log.Debug && !f.debug {
		logging.Setup(os.Stderr, logging.Options{Debug: true, JSON: f.jsonLogs})
	}
	return mgr, cfg, nil
}

func applyFlags(cmd *cobra.Command, f *flags, cfg *config.Config) error {
	changed := cmd.Flags().Changed
	if changed("host") {
		cfg.Target.Host = f.host
	}
	if changed("port") {
		cfg.Target.Port = f.port
	}
	if changed("edge") {
		cfg.Edge.Side = protocol.Edge(strings.ToLower(f.edge))
	}
	if changed("threshold") {
		cfg.Edge.Threshold = f.threshold
	}
	if changed("poll") {
		cfg.Edge.Poll = f.poll
	}
	if changed("screen") {
		w, h, err := parseScreen(f.screen)
		if err != nil {
			return err
		}
		cfg.Screen.Width, cfg.Screen.Height = w, h
	}
	if changed("status") {
		cfg.Status.Listen = f.status
	}
	if changed("tray") {
		cfg.Tray = f.tray
	}
	if changed("debug") {
		cfg.Log.Debug = f.debug
	}
	return nil
}

func parseScreen(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid --screen %q, want WIDTHxHEIGHT", s)
	}
	w, err := strconv.Atoi(ws)
	if err != nil || w <= 0 {
		return 0, 0, fmt.Errorf("invalid --screen width %q", ws)
	}
	h, err := strconv.Atoi(hs)
	if err != nil || h <= 0 {
		return 0, 0, fmt.Errorf("invalid --screen height %q", hs)
	}
	return w, h, nil
}

func installCmd(f *flags) *cobra.Command {
	var withTray bool
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Start the companion automatically at login",
		RunE: func(cmd *cobra.Command, args []string) error {
			var launchArgs []string
			if f.configPath != "" {
				abs, err := filepath.Abs(f.configPath)
				if err != nil {
					return err
				}
				launchArgs = append(launchArgs, "--config", abs)
			}
			if withTray {
				launchArgs = append(launchArgs, "--tray")
			}
			if err := autostart.Enable(launchArgs); err != nil {
				return fmt.Errorf("install autostart: %w", err)
			}
			fmt.Println("Autostart enabled")
			return nil
		},
	}
	cmd.Flags().BoolVar(&withTray, "tray", true, "Launch with the tray icon")
	return cmd
}

func uninstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the login autostart entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := autostart.Disable(); err != nil {
				return fmt.Errorf("remove autostart: %w", err)
			}
			fmt.Println("Autostart disabled")
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("mouseshare version %s\n", version)
		},
	}
}

func keysCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "Print the active key mapping",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			keymap := input.DefaultKeymap()
			keymap.SetOverrides(cfg.Keymap)
			return printKeymap(cmd.OutOrStdout(), keymap.Entries())
		},
	}
}

func printKeymap(w io.Writer, entries []input.Mapping) error {
	sort.Slice(entries, func(i, j int) bool { return entries[i].Source < entries[j].Source })

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SOURCE\tNATIVE\tORIGIN")
	for _, m := range entries {
		origin := "built-in"
		if m.Override {
			origin = "config"
		}
		fmt.Fprintf(tw, "%d\t%d\t%s\n", m.Source, m.Native, origin)
	}
	return tw.Flush()
}
