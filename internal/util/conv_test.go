package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekStart(t *testing.T) {
	cases := map[string]string{
		"2026-10-12": "2026-10-12", // 周一
		"2026-10-15": "2026-10-12",
		"2026-10-18": "2026-10-12", // 周日
		"2026-11-01": "2026-10-26",
	}
	for in, want := range cases {
		d, err := ParseDate(in)
		assert.NoError(t, err)
		assert.Equal(t, want, WeekStart(d).Format(DateFormat), in)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-02-28")
	assert.NoError(t, err)
	assert.Equal(t, time.February, d.Month())

	_, err = ParseDate("2026-02-30")
	assert.ErrorIs(t, err, ErrInvalidDate)
	_, err = ParseDate("")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestMustParseUint(t *testing.T) {
	assert.Equal(t, uint(42), MustParseUint("42"))
	assert.Equal(t, uint(0), MustParseUint("-1"))
	assert.Equal(t, uint(0), MustParseUint("abc"))
}
