package dto

import "github.com/iainkerinci/ska-api/internal/models"

// SubmissionRequest captures the multipart fields of POST /submissions.
// The two image uploads are bound separately from the form files.
type SubmissionRequest struct {
	FullName   string `form:"fullName" binding:"required"`
	NIM        string `form:"nim" binding:"required"`
	BirthPlace string `form:"birthPlace"`
	BirthDate  string `form:"birthDate"`
	Program    string `form:"program"`
	Semester   string `form:"semester"`
	Address    string `form:"address"`
	Phone      string `form:"phone" binding:"required"`
}

// SubmissionResponse acknowledges a dispatched request.
type SubmissionResponse struct {
	ID           string                `json:"id"`
	Filename     string                `json:"filename"`
	Status       string                `json:"status"`
	WhatsAppLink string                `json:"whatsapp_link"`
	Period       models.AcademicPeriod `json:"period"`
}
