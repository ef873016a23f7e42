package tui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestInitializeSkin_DefaultNeedsNoFile(t *testing.T) {
	if err := InitializeSkin("default", t.TempDir()); err != nil {
		t.Fatalf("default skin: %v", err)
	}
}

func TestInitializeSkin_MissingFile(t *testing.T) {
	if err := InitializeSkin("nope", t.TempDir()); err == nil {
		t.Fatal("expected error for missing skin file")
	}
}

func TestInitializeSkin_AppliesColours(t *testing.T) {
	saved := ColorBlue
	t.Cleanup(func() { ColorBlue = saved })

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "skins"), 0o755); err != nil {
		t.Fatal(err)
	}
	content := "name: dusk\ncolors:\n  blue: \"#123456\"\n  sparkle: \"1\"\n"
	if err := os.WriteFile(filepath.Join(dir, "skins", "dusk.yml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := InitializeSkin("dusk", dir); err != nil {
		t.Fatalf("InitializeSkin: %v", err)
	}
	if ColorBlue != lipgloss.Color("#123456") {
		t.Errorf("ColorBlue = %v, want #123456", ColorBlue)
	}
}

func TestParseSkin_Invalid(t *testing.T) {
	if _, err := ParseSkin([]byte("colors: [unterminated")); err == nil {
		t.Fatal("expected YAML error")
	}
}
