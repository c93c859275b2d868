package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/oarkflow/lux"
)

// repl reads lines until EOF or :quit. Definitions persist across inputs.
func (a *app) repl() int {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	a.loadHistory(line)
	defer a.saveHistory(line)

	in := a.interpreter()
	var buf strings.Builder
	for {
		prompt := a.cfg.Prompt
		if buf.Len() > 0 {
			prompt = a.cfg.ContinuationPrompt
		}
		input, err := line.Prompt(prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) && buf.Len() > 0 {
				buf.Reset()
				continue
			}
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				return exitOK
			}
			fmt.Fprintf(a.stderr, "Error: %v\n", err)
			return exitOSErr
		}

		if buf.Len() == 0 {
			switch strings.TrimSpace(input) {
			case "":
				continue
			case ":quit", ":exit":
				return exitOK
			}
		}
		buf.WriteString(input)
		buf.WriteByte('\n')
		src := buf.String()
		if incomplete(src) {
			continue
		}
		buf.Reset()
		line.AppendHistory(strings.TrimSpace(src))
		// Diagnostics were already printed by the reporter.
		_ = in.Run(src)
	}
}

// incomplete reports whether src needs more lines: unbalanced brackets or an
// unterminated string or block comment.
func incomplete(src string) bool {
	collector := &lux.CollectingReporter{}
	depth := 0
	for _, tok := range lux.Scan(src, collector) {
		switch tok.Type {
		case lux.LEFT_PAREN, lux.LEFT_BRACE:
			depth++
		case lux.RIGHT_PAREN, lux.RIGHT_BRACE:
			depth--
		}
	}
	if depth > 0 {
		return true
	}
	for _, d := range collector.Diagnostics() {
		if d.Message == "Unterminated String" || d.Message == "Unterminated Comment" {
			return true
		}
	}
	return false
}

func (a *app) loadHistory(line *liner.State) {
	if a.cfg.HistoryFile == "" {
		return
	}
	f, err := os.Open(a.cfg.HistoryFile)
	if err != nil {
		return
	}
	defer f.Close()
	if _, err := line.ReadHistory(f); err != nil {
		a.logger.Warn("reading history", slog.String("file", a.cfg.HistoryFile), slog.Any("error", err))
	}
}

func (a *app) saveHistory(line *liner.State) {
	if a.cfg.HistoryFile == "" {
		return
	}
	f, err := os.Create(a.cfg.HistoryFile)
	if err != nil {
		a.logger.Warn("writing history", slog.String("file", a.cfg.HistoryFile), slog.Any("error", err))
		return
	}
	defer f.Close()
	if _, err := line.WriteHistory(f); err != nil {
		a.logger.Warn("writing history", slog.String("file", a.cfg.HistoryFile), slog.Any("error", err))
	}
}
