package led

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeLED creates a sysfs-like LED directory under root.
func fakeLED(t *testing.T, root, name, trigger, maxBrightness string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"trigger":    trigger,
		"brightness": "0",
	}
	if maxBrightness != "" {
		files["max_brightness"] = maxBrightness
	}
	for file, content := range files {
		if err := os.WriteFile(filepath.Join(dir, file), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return strings.TrimSpace(string(data))
}

func TestSysfs_WriteAndRestore(t *testing.T) {
	root := t.TempDir()
	dir := fakeLED(t, root, "ACT", "none rc-feedback [mmc0] heartbeat", "255")

	out, err := openSysfs(root, "ACT")
	if err != nil {
		t.Fatalf("openSysfs() error = %v", err)
	}
	if got := readFile(t, filepath.Join(dir, "trigger")); got != "none" {
		t.Errorf("trigger after open = %q, want none", got)
	}

	if err := out.Write(true); err != nil {
		t.Fatalf("Write(true) error = %v", err)
	}
	if got := readFile(t, filepath.Join(dir, "brightness")); got != "255" {
		t.Errorf("brightness = %q, want 255", got)
	}

	if err := out.Write(false); err != nil {
		t.Fatalf("Write(false) error = %v", err)
	}
	if got := readFile(t, filepath.Join(dir, "brightness")); got != "0" {
		t.Errorf("brightness = %q, want 0", got)
	}

	if err := out.Write(true); err != nil {
		t.Fatal(err)
	}
	if err := out.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if got := readFile(t, filepath.Join(dir, "brightness")); got != "0" {
		t.Errorf("brightness after Close = %q, want 0", got)
	}
	if got := readFile(t, filepath.Join(dir, "trigger")); got != "mmc0" {
		t.Errorf("trigger after Close = %q, want mmc0", got)
	}

	// Closed outputs ignore writes and repeated closes.
	if err := out.Write(true); err != nil {
		t.Errorf("Write() after Close error = %v", err)
	}
	if got := readFile(t, filepath.Join(dir, "brightness")); got != "0" {
		t.Errorf("brightness changed after Close: %q", got)
	}
	if err := out.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestSysfs_DefaultBrightness(t *testing.T) {
	root := t.TempDir()
	dir := fakeLED(t, root, "usr_led", "[none] heartbeat", "")

	out, err := openSysfs(root, "usr_led")
	if err != nil {
		t.Fatal(err)
	}
	if err := out.Write(true); err != nil {
		t.Fatal(err)
	}
	if got := readFile(t, filepath.Join(dir, "brightness")); got != "1" {
		t.Errorf("brightness = %q, want 1", got)
	}
}

func TestSysfs_Missing(t *testing.T) {
	if _, err := openSysfs(t.TempDir(), "nonexistent"); err == nil {
		t.Error("openSysfs() with missing LED should return error")
	}
}

func TestActiveTrigger(t *testing.T) {
	tests := map[string]string{
		"none rc-feedback [mmc0] heartbeat": "mmc0",
		"[none] timer":                      "none",
		"timer heartbeat":                   "",
		"":                                  "",
	}
	for listing, want := range tests {
		if got := activeTrigger(listing); got != want {
			t.Errorf("activeTrigger(%q) = %q, want %q", listing, got, want)
		}
	}
}
