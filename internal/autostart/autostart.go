// Package autostart provides auto-start functionality.
package autostart

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"text/template"
)

// Label identifies the companion in every platform's login items.
const Label = "com.mouseshare.companion"

const macLaunchAgentPlist = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
    <key>Label</key>
    <string>{{.Label}}</string>
    <key>ProgramArguments</key>
    <array>
        <string>{{.ExecutablePath}}</string>
{{- range .Args}}
        <string>{{.}}</string>
{{- end}}
    </array>
    <key>RunAtLoad</key>
    <true/>
    <key>KeepAlive</key>
    <true/>
</dict>
</plist>
`

const linuxDesktopEntry = `[Desktop Entry]
Type=Application
Name=MouseShare Companion
Comment=Receive keyboard and mouse input from a paired machine
Exec={{.Command}}
Terminal=false
X-GNOME-Autostart-enabled=true
`

type entry struct {
	Label          string
	ExecutablePath string
	Args           []string
}

// Command is the quoted command line for launchers that take one string.
func (e entry) Command() string {
	parts := make([]string, 0, len(e.Args)+1)
	for _, p := range append([]string{e.ExecutablePath}, e.Args...) {
		if strings.ContainsAny(p, " \t\"") {
			p = `"` + strings.ReplaceAll(p, `"`, `\"`) + `"`
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, " ")
}

func newEntry(args []string) (entry, error) {
	execPath, err := os.Executable()
	if err != nil {
		return entry{}, fmt.Errorf("failed to get executable path: %w", err)
	}
	return entry{Label: Label, ExecutablePath: execPath, Args: args}, nil
}

// Enable enables auto-start on login with the given arguments
func Enable(args []string) error {
	e, err := newEntry(args)
	if err != nil {
		return err
	}
	switch runtime.GOOS {
	case "darwin":
		return writeTemplate(macPlistPath, macLaunchAgentPlist, e)
	case "windows":
		return enableWindows(e)
	case "linux", "freebsd", "openbsd", "netbsd":
		return writeTemplate(linuxDesktopPath, linuxDesktopEntry, e)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

// Disable disables auto-start on login
func Disable() error {
	switch runtime.GOOS {
	case "darwin":
		return removeFile(macPlistPath)
	case "windows":
		return disableWindows()
	case "linux", "freebsd", "openbsd", "netbsd":
		return removeFile(linuxDesktopPath)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

// IsEnabled checks if auto-start is enabled
func IsEnabled() bool {
	switch runtime.GOOS {
	case "darwin":
		return fileExists(macPlistPath)
	case "windows":
		return isEnabledWindows()
	case "linux", "freebsd", "openbsd", "netbsd":
		return fileExists(linuxDesktopPath)
	default:
		return false
	}
}

func macPlistPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Library", "LaunchAgents", Label+".plist"), nil
}

func linuxDesktopPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "autostart", "mouseshare.desktop"), nil
}

func render(tmplText string, e entry) ([]byte, error) {
	tmpl, err := template.New("autostart").Parse(tmplText)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, e); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeTemplate(pathFn func() (string, error), tmplText string, e entry) error {
	path, err := pathFn()
	if err != nil {
		return err
	}
	data, err := render(tmplText, e)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func removeFile(pathFn func() (string, error)) error {
	path, err := pathFn()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func fileExists(pathFn func() (string, error)) bool {
	path, err := pathFn()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}
