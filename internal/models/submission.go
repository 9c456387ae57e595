package models

import "time"

// Program enumerates the study programs offered on the request form.
type Program string

const (
	ProgramPAI   Program = "Pendidikan Agama Islam"
	ProgramMPI   Program = "Manajemen Pendidikan Islam"
	ProgramPBA   Program = "Pendidikan Bahasa Arab"
	ProgramPGMI  Program = "Pendidikan Guru Madrasah Ibtidaiyah"
	ProgramPIAUD Program = "Pendidikan Islam Anak Usia Dini"
	ProgramTMTK  Program = "Tadris Matematika"
	ProgramTBIO  Program = "Tadris Biologi"
	ProgramBKPI  Program = "Bimbingan Konseling dan Pendidikan Islam"
)

// Programs returns the fixed list of selectable study programs.
func Programs() []Program {
	return []Program{
		ProgramPAI,
		ProgramMPI,
		ProgramPBA,
		ProgramPGMI,
		ProgramPIAUD,
		ProgramTMTK,
		ProgramTBIO,
		ProgramBKPI,
	}
}

// Valid reports whether p is one of the offered programs.
func (p Program) Valid() bool {
	for _, known := range Programs() {
		if p == known {
			return true
		}
	}
	return false
}

// Attachment is an uploaded validation image held in memory for the
// lifetime of one submission.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Submission is one certificate request. It is never persisted; it exists
// from form submit until dispatch completes.
type Submission struct {
	ID           string
	FullName     string
	NIM          string
	BirthPlace   string
	BirthDate    string
	Program      Program
	Semester     string
	Address      string
	Phone        string
	KTM          *Attachment
	PaymentProof *Attachment
	SubmittedAt  time.Time
}
