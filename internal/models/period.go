package models

// AcademicPeriod is derived from the wall clock on every request; it is
// never stored and never mutated.
type AcademicPeriod struct {
	AcademicYear string `json:"academic_year"`
	SemesterName string `json:"semester_name"`
	MonthRoman   string `json:"month_roman"`
	Year         int    `json:"year"`
	LongDate     string `json:"long_date"`
}
