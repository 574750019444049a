package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate_MonthYear(t *testing.T) {
	d := ParseDate("We launched in March 2021")
	require.NotNil(t, d)
	assert.Equal(t, "2021", d.Year)
	assert.Equal(t, time.Date(2021, time.March, 1, 0, 0, 0, 0, time.Local), d.Timestamp)
}

func TestParseDate_MonthYear_Abbreviated(t *testing.T) {
	d := ParseDate("back in jan 1999 we started")
	require.NotNil(t, d)
	assert.Equal(t, "1999", d.Year)
	assert.Equal(t, time.Date(1999, time.January, 1, 0, 0, 0, 0, time.Local), d.Timestamp)
}

func TestParseDate_BareYear(t *testing.T) {
	d := ParseDate("founded the company in 2020, best decision ever")
	require.NotNil(t, d)
	assert.Equal(t, "2020", d.Year)
	assert.Equal(t, time.Date(2020, time.January, 1, 0, 0, 0, 0, time.Local), d.Timestamp)
}

func TestParseDate_NumericISO(t *testing.T) {
	d := ParseDate("shipped on 2024-01-15 after the freeze")
	require.NotNil(t, d)
	assert.Equal(t, "2024", d.Year)
	assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.Local), d.Timestamp)
}

func TestParseDate_NumericSlash_MMDDFirst(t *testing.T) {
	// 01/15/2024 is only valid as MM/DD/YYYY.
	d := ParseDate("went live 01/15/2024")
	require.NotNil(t, d)
	assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.Local), d.Timestamp)
}

func TestParseDate_NumericSlash_FallsBackToDDMM(t *testing.T) {
	// 25/12/1995 cannot be MM/DD, so DD/MM applies.
	d := ParseDate("25/12/1995 was a good day")
	require.NotNil(t, d)
	assert.Equal(t, "1995", d.Year)
	assert.Equal(t, time.Date(1995, time.December, 25, 0, 0, 0, 0, time.Local), d.Timestamp)
}

func TestParseDate_NumericOutOfRangeYear(t *testing.T) {
	assert.Nil(t, ParseDate("dated 2150-01-01 in the appendix"))
}

func TestParseDate_NoMatch(t *testing.T) {
	assert.Nil(t, ParseDate("No date here"))
}

func TestParseDate_ImpossibleDateFallsBackToBareYear(t *testing.T) {
	// Neither MM/DD nor DD/MM can make sense of 13/32/2020, but the year
	// itself still parses.
	d := ParseDate("13/32/2020")
	require.NotNil(t, d)
	assert.Equal(t, "2020", d.Year)
	assert.Equal(t, time.Date(2020, time.January, 1, 0, 0, 0, 0, time.Local), d.Timestamp)
}

func TestParseDate_YearOutsideBareRange(t *testing.T) {
	assert.Nil(t, ParseDate("in the year 1776"))
	assert.Nil(t, ParseDate("sometime around 2150"))
}
