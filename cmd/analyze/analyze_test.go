package analyze_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"fjacquet/giften-csv/cmd/analyze"
	"fjacquet/giften-csv/cmd/root"
	"fjacquet/giften-csv/internal/config"
	"fjacquet/giften-csv/internal/container"
	"fjacquet/giften-csv/internal/fileutils"
	"fjacquet/giften-csv/internal/logging"
	"fjacquet/giften-csv/internal/sheet/sheettest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeCommand_Metadata(t *testing.T) {
	assert.Equal(t, "analyze", analyze.Cmd.Use)
	flag := analyze.Cmd.Flags().Lookup("format")
	require.NotNil(t, flag)
	assert.Equal(t, "f", flag.Shorthand)
}

func TestAnalyzeCommand_Run(t *testing.T) {
	dir := t.TempDir()
	sheettest.WriteXLSX(t, filepath.Join(dir, "giften_2023.xlsx"), [][]interface{}{
		{"Politieke partij", "Neveninstelling", "Totaalbedrag", "Naam donateur", "Adres donateur",
			"Bedrag", "Datum"},
		{"Partij A", nil, nil, "Jansen", "Zwolle", 20000, "2023-01-10"},
		{"Partij B", nil, nil, "Jansen", "Zwolle", 11000, "2023-02-10"},
	})

	cfg := config.Default()
	cfg.Data.Directory = dir
	cfg.Sources = map[string]string{"2023": "giften_2023.xlsx"}
	c, err := container.NewContainerWithLogger(cfg, logging.NewMockLogger())
	require.NoError(t, err)
	root.AppContainer = c
	t.Cleanup(func() { root.AppContainer = nil })

	analyze.Format = ""
	var out bytes.Buffer
	analyze.Cmd.SetOut(&out)

	require.NoError(t, analyze.Cmd.RunE(analyze.Cmd, nil))

	text := out.String()
	assert.Contains(t, text, "2023: 2 individual donation records")
	assert.Contains(t, text, "1 donors gave to multiple parties")
	assert.Contains(t, text, "Partijen: Partij A, Partij B")
	assert.True(t, fileutils.FileExists(filepath.Join(dir, "recurring_donors.csv")))
}

func TestAnalyzeCommand_BadFormat(t *testing.T) {
	c, err := container.NewContainerWithLogger(config.Default(), logging.NewMockLogger())
	require.NoError(t, err)
	root.AppContainer = c
	t.Cleanup(func() {
		root.AppContainer = nil
		analyze.Format = ""
	})

	analyze.Format = "xml"
	analyze.Cmd.SetOut(&bytes.Buffer{})

	assert.Error(t, analyze.Cmd.RunE(analyze.Cmd, nil))
}
