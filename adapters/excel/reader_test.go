package excel

import (
	"bytes"
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bmireport/domain/core"
	"bmireport/domain/dataset"
	"bmireport/internal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var quietLogger = internal.NewLoggerTo(&bytes.Buffer{}, internal.LogLevelError)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDataReader_LoadCSV(t *testing.T) {
	path := writeFile(t, "bmi_train.csv", strings.Join([]string{
		"Gender,Height,Weight,Index",
		"Male,175,80,3",
		"Female, 160 ,45,2",
		"",
		"Male,abc,70,2",
		"Female,150,60,9",
	}, "\n"))

	ds, err := NewDataReader(path).WithLogger(quietLogger).Load()
	require.NoError(t, err)

	assert.Equal(t, "bmi_train", ds.Name)
	assert.Equal(t, dataset.SourceCSV, ds.Source)
	require.Equal(t, 4, ds.Len())
	assert.Equal(t, "Male", ds.Records[0].Gender)
	assert.Equal(t, 175.0, ds.Records[0].Height)
	assert.Equal(t, 3, ds.Records[0].Index)
	assert.Equal(t, 160.0, ds.Records[1].Height)

	assert.True(t, math.IsNaN(ds.Records[2].Height))
	assert.Equal(t, -1, ds.Records[3].Index)
	assert.Len(t, ds.Warnings, 2)
}

func TestDataReader_CaseInsensitiveHeaders(t *testing.T) {
	path := writeFile(t, "lower.csv", "height,WEIGHT,index\n180,90,3\n")

	ds, err := NewDataReader(path).WithLogger(quietLogger).Load()
	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())
	assert.Equal(t, "", ds.Records[0].Gender)
	assert.Equal(t, 90.0, ds.Records[0].Weight)
}

func TestDataReader_Errors(t *testing.T) {
	missing := writeFile(t, "missing.csv", "Gender,Height,Weight\nMale,175,80\n")
	_, err := NewDataReader(missing).WithLogger(quietLogger).Load()
	assert.True(t, errors.Is(err, core.ErrMissingColumn))

	headerOnly := writeFile(t, "header.csv", "Gender,Height,Weight,Index\n")
	_, err = NewDataReader(headerOnly).WithLogger(quietLogger).Load()
	assert.True(t, errors.Is(err, core.ErrInsufficientData))
	assert.True(t, core.IsInputError(err))

	unsupported := writeFile(t, "data.json", "{}")
	_, err = NewDataReader(unsupported).WithLogger(quietLogger).Load()
	assert.True(t, errors.Is(err, core.ErrUnsupportedFormat))

	_, err = NewDataReader(filepath.Join(t.TempDir(), "nope.csv")).Load()
	assert.Error(t, err)
}

func TestDataReader_LoadXLSX(t *testing.T) {
	f := excelize.NewFile()
	rows := [][]interface{}{
		{"Gender", "Height", "Weight", "Index"},
		{"Male", 175, 80, 3},
		{"Female", 160, 45, 2},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}
	path := filepath.Join(t.TempDir(), "bmi.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	ds, err := NewDataReader(path).WithLogger(quietLogger).Load()
	require.NoError(t, err)
	require.Equal(t, 2, ds.Len())
	assert.Equal(t, dataset.SourceExcel, ds.Source)
	assert.Equal(t, 45.0, ds.Records[1].Weight)
	assert.Equal(t, 2, ds.Records[1].Index)
}

func TestLoadPair(t *testing.T) {
	train := writeFile(t, "train.csv", "Gender,Height,Weight,Index\nMale,175,80,3\nFemale,160,45,2\n")
	validation := writeFile(t, "validation.csv", "Gender,Height,Weight,Index\nMale,180,70,2\n")

	pair, err := LoadPair(context.Background(), train, validation, quietLogger)
	require.NoError(t, err)
	assert.Equal(t, 2, pair.Train.Len())
	assert.Equal(t, 1, pair.Validation.Len())

	pair, err = LoadPair(context.Background(), train, "", quietLogger)
	require.NoError(t, err)
	assert.Nil(t, pair.Validation)

	_, err = LoadPair(context.Background(), train, filepath.Join(t.TempDir(), "absent.csv"), quietLogger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation set")
}
