package main

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/makulo1234/termpaint/internal/canvas"
	"github.com/makulo1234/termpaint/internal/editor"
	"github.com/makulo1234/termpaint/internal/history"
)

// Initial canvas size, until the first window size message arrives.
const (
	defaultCols = 80
	defaultRows = 21
)

func main() {
	config, configErr := loadConfig()

	logger, closer, err := setupLogging(config)
	if err != nil {
		fmt.Fprintln(os.Stderr, "termpaint:", err)
		os.Exit(1)
	}
	defer closer.Close()

	m := initialModel(config, logger)
	if configErr != nil {
		m.report(configErr)
	}

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

// setupLogging logs to $TERMPAINT_LOG or the configured log file. The
// terminal belongs to the UI, so with neither set nothing is logged.
func setupLogging(config *Config) (*slog.Logger, io.Closer, error) {
	path := os.Getenv("TERMPAINT_LOG")
	if path == "" {
		path = config.LogFile
	}
	if path == "" {
		return slog.New(slog.DiscardHandler), io.NopCloser(nil), nil
	}

	f, err := tea.LogToFile(path, "termpaint")
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: config.slogLevel()}))
	slog.SetDefault(logger)
	return logger, f, nil
}

func initialModel(config *Config, logger *slog.Logger) model {
	c := canvas.New(defaultCols, defaultRows, config.BackgroundColor())
	h := history.New(c,
		history.WithLimit(config.HistoryLimit),
		history.WithLogger(logger),
	)
	ed := editor.New(c, h, editor.EditorState{
		Tool:        config.StartTool(),
		Color:       config.PenColor(),
		Width:       config.PenWidth,
		EraserWidth: config.EraserWidth,
	}, logger)

	palette := config.PaletteColors()
	colorIndex := -1
	for i, p := range palette {
		if p.Hex() == config.PenColor().Hex() {
			colorIndex = i
			break
		}
	}

	return model{
		width:        defaultCols,
		height:       defaultRows + toolbarRows + statusRows,
		editor:       ed,
		config:       config,
		logger:       logger,
		palette:      palette,
		colorIndex:   colorIndex,
		mode:         ModeNormal,
		selectedFile: -1,
	}
}
