package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bmireport/domain/bmi"
)

const sampleCSV = `Gender,Height,Weight,Index
Male,175,80,3
Female,160,45,2
Male,190,50,0
Female,165,52,1
Male,170,65,2
`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bmi.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))
	return path
}

func TestRunGrid(t *testing.T) {
	var out bytes.Buffer
	err := runGrid(&out, bmi.GridRange{HeightMin: 160, HeightMax: 161, WeightMin: 64, WeightMax: 65})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Height,Weight,BMI,Index", lines[0])
	assert.Equal(t, "160,64,25.0000,2", lines[1])
	assert.Equal(t, "160,65,25.3906,3", lines[2])
}

func TestRunGrid_InvalidRange(t *testing.T) {
	var out bytes.Buffer
	err := runGrid(&out, bmi.GridRange{HeightMin: 200, HeightMax: 100, WeightMin: 50, WeightMax: 60})
	assert.Error(t, err)
}

func TestRunReport(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runReport(context.Background(), &out, writeSample(t), "", false))

	text := out.String()
	assert.Contains(t, text, "rows: 5")
	assert.Contains(t, text, "included: 4")
	assert.Contains(t, text, "excluded: 1")
	assert.Contains(t, text, "spearman:")
	assert.Contains(t, text, "BMI overall: n=5")
}

func TestRunReport_JSON(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runReport(context.Background(), &out, writeSample(t), "", true))
	assert.Contains(t, out.String(), `"correlations"`)
}

func TestRunExport(t *testing.T) {
	target := filepath.Join(t.TempDir(), "report.xlsx")

	var out bytes.Buffer
	require.NoError(t, runExport(context.Background(), &out, writeSample(t), target))

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
	assert.Contains(t, out.String(), "5 rows")
}
