package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvisionalEvent(t *testing.T) {
	ev := NewProvisionalEvent("ev-1", "We shipped the beta", Position{X: 400, Y: 300})

	assert.Equal(t, "ev-1", ev.ID)
	assert.Equal(t, PlaceholderTitle, ev.Title)
	assert.Equal(t, "We shipped the beta", ev.Description)
	assert.Empty(t, ev.Year)
	assert.Nil(t, ev.Timestamp)
	assert.False(t, ev.DateConfirmed)
	require.NotNil(t, ev.Position)
	assert.Equal(t, 400.0, ev.Position.X)
	assert.Equal(t, 300.0, ev.Position.Y)
}

func TestValidYear(t *testing.T) {
	tests := []struct {
		year  string
		valid bool
	}{
		{"1969", true},
		{"1900", true},
		{"2099", true},
		{"2024", true},
		{"19x9", false},
		{"969", false},
		{"21000", false},
		{"2100", false},
		{"1899", false},
		{"", false},
		{"20 24", false},
	}

	for _, tt := range tests {
		t.Run(tt.year, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidYear(tt.year))
		})
	}
}

func TestTimestampForYear(t *testing.T) {
	ts, err := TimestampForYear("1969")
	require.NoError(t, err)
	assert.Equal(t, time.Date(1969, time.January, 1, 0, 0, 0, 0, time.Local), ts)
}

func TestTimestampForYear_Invalid(t *testing.T) {
	_, err := TimestampForYear("19x9")
	assert.ErrorIs(t, err, ErrInvalidYear)
}

func TestFallbackTitle_Short(t *testing.T) {
	assert.Equal(t, "A short one", FallbackTitle("A short one"))
}

func TestFallbackTitle_Truncated(t *testing.T) {
	long := strings.Repeat("A", 80)
	got := FallbackTitle(long)
	assert.Equal(t, strings.Repeat("A", 50)+"...", got)
}

func TestFallbackTitle_ExactBoundary(t *testing.T) {
	exact := strings.Repeat("B", 50)
	assert.Equal(t, exact, FallbackTitle(exact))
}

func TestEventBefore(t *testing.T) {
	t1 := time.Date(1969, time.January, 1, 0, 0, 0, 0, time.Local)
	t2 := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.Local)

	dated1 := TimelineEvent{ID: "a", Timestamp: &t1}
	dated2 := TimelineEvent{ID: "b", Timestamp: &t2}
	undated := TimelineEvent{ID: "c"}

	assert.True(t, dated1.Before(&dated2))
	assert.False(t, dated2.Before(&dated1))
	assert.True(t, dated1.Before(&undated))
	assert.False(t, undated.Before(&dated1))
	assert.False(t, undated.Before(&undated))
}

func TestNeedsDate(t *testing.T) {
	ev := NewProvisionalEvent("ev-1", "pending", Position{})
	assert.True(t, ev.NeedsDate())

	ev.DateConfirmed = true
	assert.False(t, ev.NeedsDate())
}
