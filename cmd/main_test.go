package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"mouseshare/internal/config"
	"mouseshare/internal/input"
	"mouseshare/internal/protocol"
)

func TestParseScreen(t *testing.T) {
	w, h, err := parseScreen("2560X1440")
	if err != nil || w != 2560 || h != 1440 {
		t.Errorf("Expected 2560x1440, got %dx%d (%v)", w, h, err)
	}
	for _, bad := range []string{"", "1920", "0x1080", "axb", "1920x-1"} {
		if _, _, err := parseScreen(bad); err == nil {
			t.Errorf("Expected %q to be rejected", bad)
		}
	}
}

func TestApplyFlagsOnlyChanged(t *testing.T) {
	var f flags
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringVar(&f.host, "host", "", "")
	cmd.Flags().IntVar(&f.port, "port", 0, "")
	cmd.Flags().StringVar(&f.edge, "edge", "", "")
	cmd.Flags().StringVar(&f.screen, "screen", "", "")
	if err := cmd.Flags().Parse([]string{"--host", "10.1.1.1", "--edge", "RIGHT", "--screen", "800x600"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	cfg := config.DefaultConfig()
	if err := applyFlags(cmd, &f, cfg); err != nil {
		t.Fatalf("applyFlags: %v", err)
	}
	if cfg.Target.Host != "10.1.1.1" {
		t.Errorf("Expected host override, got %s", cfg.Target.Host)
	}
	if cfg.Target.Port != 9876 {
		t.Errorf("Expected unchanged port to keep its config value, got %d", cfg.Target.Port)
	}
	if cfg.Edge.Side != protocol.EdgeRight {
		t.Errorf("Expected edge right, got %s", cfg.Edge.Side)
	}
	if cfg.Screen.Width != 800 || cfg.Screen.Height != 600 {
		t.Errorf("Expected 800x600, got %dx%d", cfg.Screen.Width, cfg.Screen.Height)
	}
}

func TestPrintKeymap(t *testing.T) {
	var buf bytes.Buffer
	err := printKeymap(&buf, []input.Mapping{
		{Source: 53, Native: 1, Override: true},
		{Source: 0, Native: 30},
	})
	if err != nil {
		t.Fatalf("printKeymap: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected header and 2 rows, got %q", buf.String())
	}
	if !strings.HasPrefix(lines[1], "0 ") || !strings.Contains(lines[1], "built-in") {
		t.Errorf("Expected source 0 first, got %q", lines[1])
	}
	if !strings.Contains(lines[2], "config") {
		t.Errorf("Expected override origin, got %q", lines[2])
	}
}
