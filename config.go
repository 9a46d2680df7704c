package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"github.com/makulo1234/termpaint/internal/editor"
	"github.com/makulo1234/termpaint/internal/export"
)

var defaultPalette = []string{
	"#000000", "#e53935", "#43a047", "#fdd835",
	"#1e88e5", "#8e24aa", "#00acc1", "#ffffff",
}

type Config struct {
	SaveDirectory    string   `toml:"save_directory"`
	Confirmations    bool     `toml:"confirmations"`
	Tool             string   `toml:"tool"`
	PenWidth         int      `toml:"pen_width"`
	EraserWidth      int      `toml:"eraser_width"`
	Color            string   `toml:"color"`
	Background       string   `toml:"background"`
	Palette          []string `toml:"palette"`
	HistoryLimit     int      `toml:"history_limit"`
	LogFile          string   `toml:"log_file"`
	LogLevel         string   `toml:"log_level"`
	ExportCellWidth  float64  `toml:"export_cell_width"`
	ExportCellHeight float64  `toml:"export_cell_height"`
}

func defaultConfig() *Config {
	opts := export.DefaultOptions()
	return &Config{
		Confirmations:    true,
		Tool:             editor.ToolPen.String(),
		PenWidth:         1,
		EraserWidth:      5,
		Color:            "#000000",
		Background:       "#ffffff",
		Palette:          append([]string(nil), defaultPalette...),
		LogLevel:         "info",
		ExportCellWidth:  opts.CellWidth,
		ExportCellHeight: opts.CellHeight,
	}
}

// configPath returns $TERMPAINT_CONFIG or ~/.config/termpaint/config.toml.
func configPath() (string, error) {
	if p := os.Getenv("TERMPAINT_CONFIG"); p != "" {
		return homedir.Expand(p)
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "termpaint", "config.toml"), nil
}

// loadConfig always returns a usable config. The error reports a config
// file that exists but could not be used.
func loadConfig() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return defaultConfig(), nil
	}
	return loadConfigFile(path)
}

func loadConfigFile(path string) (*Config, error) {
	config := defaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return config, err
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return defaultConfig(), fmt.Errorf("parsing %s: %w", path, err)
	}
	config.normalize()
	return config, nil
}

// normalize replaces invalid values with defaults.
func (c *Config) normalize() {
	d := defaultConfig()

	if c.SaveDirectory != "" {
		if dir, err := homedir.Expand(c.SaveDirectory); err == nil {
			c.SaveDirectory = dir
		}
		if abs, err := filepath.Abs(c.SaveDirectory); err == nil {
			c.SaveDirectory = abs
		}
	}
	if c.LogFile != "" {
		if p, err := homedir.Expand(c.LogFile); err == nil {
			c.LogFile = p
		}
	}

	if tool, err := editor.ParseTool(c.Tool); err == nil {
		c.Tool = tool.String()
	} else {
		c.Tool = d.Tool
	}
	c.PenWidth = min(max(c.PenWidth, editor.MinWidth), editor.MaxWidth)
	c.EraserWidth = min(max(c.EraserWidth, editor.MinWidth), editor.MaxWidth)
	if c.HistoryLimit < 0 {
		c.HistoryLimit = 0
	}
	c.Color = normalizeHex(c.Color, d.Color)
	c.Background = normalizeHex(c.Background, d.Background)

	palette := make([]string, len(defaultPalette))
	for i := range palette {
		fallback := defaultPalette[i]
		if i < len(c.Palette) {
			palette[i] = normalizeHex(c.Palette[i], fallback)
		} else {
			palette[i] = fallback
		}
	}
	c.Palette = palette

	if c.ExportCellWidth <= 0 {
		c.ExportCellWidth = d.ExportCellWidth
	}
	if c.ExportCellHeight <= 0 {
		c.ExportCellHeight = d.ExportCellHeight
	}
}

func normalizeHex(s, fallback string) string {
	col, err := parseColor(s)
	if err != nil {
		return fallback
	}
	return col.Hex()
}

// parseColor accepts "#rrggbb", "rrggbb" and the short "#rgb" form.
func parseColor(s string) (colorful.Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	return colorful.Hex("#" + s)
}

func mustColor(s string) colorful.Color {
	col, _ := parseColor(s)
	return col
}

// StartTool returns the tool selected at startup.
func (c *Config) StartTool() editor.Tool {
	tool, err := editor.ParseTool(c.Tool)
	if err != nil {
		return editor.ToolPen
	}
	return tool
}

func (c *Config) PenColor() colorful.Color { return mustColor(c.Color) }

func (c *Config) BackgroundColor() colorful.Color { return mustColor(c.Background) }

func (c *Config) PaletteColors() []colorful.Color {
	out := make([]colorful.Color, len(c.Palette))
	for i, s := range c.Palette {
		out[i] = mustColor(s)
	}
	return out
}

func (c *Config) ExportOptions() export.Options {
	return export.Options{CellWidth: c.ExportCellWidth, CellHeight: c.ExportCellHeight}
}

func (c *Config) slogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// GetSavePath resolves a file name typed by the user against the save
// directory. Absolute and ~ paths are used as given.
func (c *Config) GetSavePath(filename string) string {
	if strings.HasPrefix(filename, "~") {
		if p, err := homedir.Expand(filename); err == nil {
			return p
		}
	}
	if c.SaveDirectory == "" || filepath.IsAbs(filename) {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}
