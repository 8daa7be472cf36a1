package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngmaloney/vessel-console/internal/models"
	"github.com/ngmaloney/vessel-console/internal/report"
)

func TestParseFormats(t *testing.T) {
	formats, err := parseFormats("xlsx, PDF,,yml")
	require.NoError(t, err)
	assert.Equal(t, []report.Format{report.FormatXLSX, report.FormatPDF, report.FormatYAML}, formats)

	_, err = parseFormats("docx")
	assert.True(t, errors.Is(err, report.ErrUnsupportedFormat))

	_, err = parseFormats(" , ")
	assert.Error(t, err)
}

func TestFindVessel(t *testing.T) {
	vessels := []models.Vessel{{ID: 7, Name: "Sea Star"}, {ID: 12, Name: "7"}}

	v, err := findVessel(vessels, "7")
	require.NoError(t, err)
	assert.Equal(t, int64(7), v.ID, "ids win over names")

	v, err = findVessel(vessels, "sea star")
	require.NoError(t, err)
	assert.Equal(t, int64(7), v.ID)

	_, err = findVessel(vessels, "Blue Gull")
	assert.EqualError(t, err, `vessel "Blue Gull" not found`)
}
