package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okubo/chobo/internal/ledger"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		date string
		ok   bool
	}{
		{"20210401", true},
		{"20240229", true}, // leap day
		{"20210230", false},
		{"20230229", false},
		{"20211301", false},
		{"2021040", false},
		{"2021-04-01", false},
		{"", false},
	}
	for _, tt := range tests {
		_, err := ledger.ParseDate(tt.date)
		if tt.ok {
			assert.NoError(t, err, tt.date)
		} else {
			assert.ErrorIs(t, err, ledger.ErrInvalidDate, tt.date)
		}
	}
}

func TestNendoRange(t *testing.T) {
	start, end := ledger.NendoRange("2021")
	assert.Equal(t, "20210401", start.Format(ledger.DateLayout))
	assert.Equal(t, "20220331", end.Format(ledger.DateLayout))
}

func TestInNendo_Boundaries(t *testing.T) {
	for date, want := range map[string]bool{
		"20210401": true,  // first day
		"20220331": true,  // last day
		"20210331": false, // day before
		"20220401": false, // day after
	} {
		d, err := ledger.ParseDate(date)
		require.NoError(t, err)
		assert.Equal(t, want, ledger.InNendo("2021", d), date)
	}
}

func TestNendoOf(t *testing.T) {
	assert.Equal(t, "2021", ledger.NendoOf(time.Date(2021, time.April, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2020", ledger.NendoOf(time.Date(2021, time.March, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2021", ledger.NendoOf(time.Date(2022, time.January, 15, 0, 0, 0, 0, time.UTC)))
}

func TestValidNendo(t *testing.T) {
	assert.True(t, ledger.ValidNendo("2021"))
	assert.False(t, ledger.ValidNendo("202"))
	assert.False(t, ledger.ValidNendo("20211"))
	assert.False(t, ledger.ValidNendo("21-4"))
	assert.False(t, ledger.ValidNendo(""))
}
