package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetRMDAge(t *testing.T) {
	tests := []struct {
		birthYear int
		want      int
	}{
		{1949, 72},
		{1950, 72},
		{1951, 73},
		{1959, 73},
		{1960, 75},
		{1975, 75},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GetRMDAge(tt.birthYear), "birth year %d", tt.birthYear)
	}
}

func TestPeriodDate(t *testing.T) {
	start := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name           string
		periodsPerYear int
		index          int
		want           time.Time
	}{
		{"monthly first", 12, 1, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)},
		{"monthly second keeps day", 12, 2, time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)},
		{"next february", 12, 13, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)},
		{"monthly twelfth", 12, 12, time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)},
		{"quarterly", 4, 2, time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC)},
		{"annual", 1, 3, time.Date(2028, 1, 31, 0, 0, 0, 0, time.UTC)},
		{"weekly", 52, 2, time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC)},
		{"bi-weekly", 26, 1, time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC)},
		{"zero index", 12, 0, start},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PeriodDate(start, tt.periodsPerYear, tt.index))
		})
	}
}

func TestSemiMonthlyPeriodDate(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC), PeriodDate(start, 24, 1))
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), PeriodDate(start, 24, 2))
	assert.Equal(t, time.Date(2025, 2, 16, 0, 0, 0, 0, time.UTC), PeriodDate(start, 24, 3))
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		in     time.Time
		months int
		want   time.Time
	}{
		{time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), 1, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), -1, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)},
		{time.Date(2025, 11, 15, 9, 30, 0, 0, time.UTC), 3, time.Date(2026, 2, 15, 9, 30, 0, 0, time.UTC)},
		{time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC), 0, time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AddMonths(tt.in, tt.months), "%s %+d", tt.in.Format("2006-01-02"), tt.months)
	}
}
