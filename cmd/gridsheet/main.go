// Command gridsheet is a line-oriented REPL over a single in-memory
// Sheet: "<addr> <text>" sets a cell, a bare "<addr>" prints its value,
// and "print" dumps the whole sheet. It exists to exercise the sheet
// package interactively; it is not a file-format tool.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/vogtb/gridsheet/sheet"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	var (
		logLevel string
		prompt   string
	)
	flag.StringVar(&logLevel, "log-level", "info", "debug, info, warn, or error")
	flag.StringVar(&prompt, "prompt", "gridsheet> ", "REPL prompt text")
	flag.Parse()

	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -log-level %q: %v\n", logLevel, err)
		os.Exit(2)
	}
	zerolog.SetGlobalLevel(level)

	sessionID := uuid.New().String()
	logger := zlog.With().Str("session", sessionID).Logger()
	logger.Info().Msg("gridsheet session starting")

	sh := sheet.New().WithLogger(logger)
	repl(sh, logger, os.Stdin, os.Stdout, prompt)
}

// repl runs the read-eval-print loop until in reaches EOF. Each line is
// either "<addr>" (read) or "<addr> <text...>" (write); "print" dumps
// the whole sheet; blank lines are ignored.
func repl(sh *sheet.Sheet, logger zerolog.Logger, in io.Reader, out io.Writer, prompt string) {
	scanner := bufio.NewScanner(in)
	w := bufio.NewWriter(out)
	defer w.Flush()

	for {
		fmt.Fprint(w, prompt)
		w.Flush()

		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "print" {
			if err := sh.PrintValues(w); err != nil {
				logger.Error().Err(err).Msg("print failed")
			}
			w.Flush()
			continue
		}

		addr, text, hasText := strings.Cut(line, " ")
		if !hasText {
			handleRead(sh, w, addr)
			continue
		}
		handleWrite(sh, logger, w, addr, text)
	}

	if err := scanner.Err(); err != nil {
		logger.Error().Err(err).Msg("input scan failed")
	}
	logger.Info().Msg("gridsheet session ending")
}

func handleRead(sh *sheet.Sheet, w *bufio.Writer, addr string) {
	c, err := sh.GetCellAt(addr)
	if err != nil {
		fmt.Fprintf(w, "error: %v\n", err)
		return
	}
	if c == nil {
		fmt.Fprintln(w, "")
		return
	}
	fmt.Fprintf(w, "%v\n", c.GetValue())
}

func handleWrite(sh *sheet.Sheet, logger zerolog.Logger, w *bufio.Writer, addr, text string) {
	if err := sh.SetCellAt(addr, text); err != nil {
		logger.Debug().Str("addr", addr).Err(err).Msg("rejected edit")
		fmt.Fprintf(w, "error: %v\n", err)
		return
	}
	fmt.Fprintln(w, "ok")
}
