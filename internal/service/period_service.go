package service

import (
	"fmt"
	"time"

	"github.com/iainkerinci/ska-api/internal/models"
)

const (
	SemesterGanjil = "Ganjil"
	SemesterGenap  = "Genap"
)

var romanMonths = [12]string{"I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX", "X", "XI", "XII"}

var indonesianMonths = [12]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// Clock supplies the current time; injected so tests can pin dates.
type Clock func() time.Time

// PeriodService derives the academic period from the wall clock. Pure; no
// error conditions.
type PeriodService struct {
	clock Clock
}

// NewPeriodService constructs the service. A nil clock means time.Now.
func NewPeriodService(clock Clock) *PeriodService {
	if clock == nil {
		clock = time.Now
	}
	return &PeriodService{clock: clock}
}

// Current computes the academic period for the present moment.
//
// Months 8-12 and 1 fall in the Ganjil semester, months 2-7 in Genap. The
// academic year spans two calendar years: from August it is Y/Y+1, in
// January (tail of the same Ganjil semester) and through Genap it is Y-1/Y.
func (s *PeriodService) Current() models.AcademicPeriod {
	now := s.clock()
	month := int(now.Month())
	year := now.Year()

	var semester, academicYear string
	if month >= 8 || month == 1 {
		semester = SemesterGanjil
		if month >= 8 {
			academicYear = fmt.Sprintf("%d/%d", year, year+1)
		} else {
			academicYear = fmt.Sprintf("%d/%d", year-1, year)
		}
	} else {
		semester = SemesterGenap
		academicYear = fmt.Sprintf("%d/%d", year-1, year)
	}

	return models.AcademicPeriod{
		AcademicYear: academicYear,
		SemesterName: semester,
		MonthRoman:   romanMonths[month-1],
		Year:         year,
		LongDate:     fmt.Sprintf("%d %s %d", now.Day(), indonesianMonths[month-1], year),
	}
}
