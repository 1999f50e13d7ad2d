package autostart

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestRenderPlist(t *testing.T) {
	e := entry{Label: Label, ExecutablePath: "/Applications/mouseshare", Args: []string{"--config", "/tmp/c.yaml"}}
	out, err := render(macLaunchAgentPlist, e)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	s := string(out)
	for _, want := range []string{
		"<string>" + Label + "</string>",
		"<string>/Applications/mouseshare</string>",
		"<string>--config</string>",
		"<string>/tmp/c.yaml</string>",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("Expected plist to contain %q", want)
		}
	}
}

func TestRenderDesktopEntry(t *testing.T) {
	e := entry{ExecutablePath: "/opt/mouse share/bin", Args: []string{"--tray"}}
	out, err := render(linuxDesktopEntry, e)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), `Exec="/opt/mouse share/bin" --tray`) {
		t.Errorf("Expected quoted Exec line, got:\n%s", out)
	}
}

func TestEnableDisableLinux(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG autostart is exercised on linux only")
	}
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	if IsEnabled() {
		t.Fatal("Expected autostart to be disabled initially")
	}
	if err := Enable([]string{"--tray"}); err != nil {
		t.Fatalf("Enable: %v", err)
	}
	path := filepath.Join(dir, "autostart", "mouseshare.desktop")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Expected %s to exist: %v", path, err)
	}
	if !IsEnabled() {
		t.Error("Expected autostart to be enabled")
	}

	if err := Disable(); err != nil {
		t.Fatalf("Disable: %v", err)
	}
	if err := Disable(); err != nil {
		t.Errorf("Expected a second Disable to succeed, got %v", err)
	}
	if IsEnabled() {
		t.Error("Expected autostart to be disabled")
	}
}
