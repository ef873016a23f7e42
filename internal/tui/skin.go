package tui

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Palette used by every renderer. Skins override these at startup.
var (
	ColorBlue   = lipgloss.Color("39")
	ColorGray   = lipgloss.Color("244")
	ColorWhite  = lipgloss.Color("255")
	ColorNavy   = lipgloss.Color("17")
	ColorRed    = lipgloss.Color("196")
	ColorOrange = lipgloss.Color("208")
	ColorGreen  = lipgloss.Color("42")
	ColorSelect = lipgloss.Color("250") // background of selected rows
)

// Skin is the on-disk theme format.
//
//	name: dusk
//	colors:
//	  blue: "#5fafff"
//	  select: "240"
type Skin struct {
	Name   string            `yaml:"name"`
	Colors map[string]string `yaml:"colors"`
}

func defaultPalette() map[string]*lipgloss.Color {
	return map[string]*lipgloss.Color{
		"blue":   &ColorBlue,
		"gray":   &ColorGray,
		"white":  &ColorWhite,
		"navy":   &ColorNavy,
		"red":    &ColorRed,
		"orange": &ColorOrange,
		"green":  &ColorGreen,
		"select": &ColorSelect,
	}
}

// InitializeSkin loads configDir/skins/<name>.yml and applies its colours.
// The default skin needs no file.
func InitializeSkin(name, configDir string) error {
	if name == "" || name == "default" {
		return nil
	}

	path := filepath.Join(configDir, "skins", name+".yml")
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading skin %s: %w", path, err)
	}

	skin, err := ParseSkin(data)
	if err != nil {
		return fmt.Errorf("parsing skin %s: %w", path, err)
	}
	ApplySkin(skin)
	return nil
}

// ParseSkin decodes a YAML skin definition.
func ParseSkin(data []byte) (Skin, error) {
	var skin Skin
	if err := yaml.Unmarshal(data, &skin); err != nil {
		return Skin{}, err
	}
	return skin, nil
}

// ApplySkin overrides palette entries named in skin. Unknown names are logged
// and skipped.
func ApplySkin(skin Skin) {
	palette := defaultPalette()
	for name, value := range skin.Colors {
		target, ok := palette[name]
		if !ok {
			log.Printf("skin %q: unknown colour %q", skin.Name, name)
			continue
		}
		*target = lipgloss.Color(value)
	}
}
