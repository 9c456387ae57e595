package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func fixedClock(year int, month time.Month, day int) Clock {
	return func() time.Time {
		return time.Date(year, month, day, 10, 0, 0, 0, time.Local)
	}
}

func TestPeriodSemesterNames(t *testing.T) {
	expected := map[time.Month]string{
		time.January:   SemesterGanjil,
		time.February:  SemesterGenap,
		time.March:     SemesterGenap,
		time.April:     SemesterGenap,
		time.May:       SemesterGenap,
		time.June:      SemesterGenap,
		time.July:      SemesterGenap,
		time.August:    SemesterGanjil,
		time.September: SemesterGanjil,
		time.October:   SemesterGanjil,
		time.November:  SemesterGanjil,
		time.December:  SemesterGanjil,
	}
	for month, want := range expected {
		svc := NewPeriodService(fixedClock(2024, month, 15))
		require.Equal(t, want, svc.Current().SemesterName, "month %s", month)
	}
}

func TestPeriodAcademicYear(t *testing.T) {
	cases := []struct {
		month time.Month
		year  int
		want  string
	}{
		{time.September, 2024, "2024/2025"},
		{time.August, 2024, "2024/2025"},
		{time.December, 2024, "2024/2025"},
		{time.January, 2024, "2023/2024"},
		{time.April, 2024, "2023/2024"},
		{time.July, 2024, "2023/2024"},
	}
	for _, tc := range cases {
		svc := NewPeriodService(fixedClock(tc.year, tc.month, 1))
		require.Equal(t, tc.want, svc.Current().AcademicYear, "month %s", tc.month)
	}
}

func TestPeriodRomanMonthAndDate(t *testing.T) {
	svc := NewPeriodService(fixedClock(2024, time.August, 17))
	period := svc.Current()

	require.Equal(t, "VIII", period.MonthRoman)
	require.Equal(t, 2024, period.Year)
	require.Equal(t, "17 Agustus 2024", period.LongDate)
}

func TestPeriodDefaultsToWallClock(t *testing.T) {
	svc := NewPeriodService(nil)
	period := svc.Current()
	require.NotEmpty(t, period.AcademicYear)
	require.NotEmpty(t, period.MonthRoman)
}
