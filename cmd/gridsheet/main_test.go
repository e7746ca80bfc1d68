package main

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/vogtb/gridsheet/sheet"
)

func TestReplWriteThenRead(t *testing.T) {
	sh := sheet.New()
	logger := zerolog.Nop()
	var out strings.Builder

	repl(sh, logger, strings.NewReader("A1 5\nA1\n"), &out, "> ")

	require.Contains(t, out.String(), "ok")
	require.Contains(t, out.String(), "5")
}

func TestReplRejectsBadAddress(t *testing.T) {
	sh := sheet.New()
	logger := zerolog.Nop()
	var out strings.Builder

	repl(sh, logger, strings.NewReader("1A hello\n"), &out, "> ")

	require.Contains(t, out.String(), "error:")
}

func TestReplPrintCommand(t *testing.T) {
	sh := sheet.New()
	logger := zerolog.Nop()
	var out strings.Builder

	repl(sh, logger, strings.NewReader("A1 7\nprint\n"), &out, "> ")

	require.Contains(t, out.String(), "7")
}

func TestReplReadUnoccupiedCellIsBlank(t *testing.T) {
	sh := sheet.New()
	logger := zerolog.Nop()
	var out strings.Builder

	repl(sh, logger, strings.NewReader("A1\n"), &out, "> ")

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.NotEmpty(t, lines)
	require.Equal(t, "> ", lines[0])
}
