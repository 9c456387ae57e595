package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/iainkerinci/ska-api/internal/dto"
	"github.com/iainkerinci/ska-api/internal/models"
	appErrors "github.com/iainkerinci/ska-api/pkg/errors"
	"github.com/iainkerinci/ska-api/pkg/response"
)

type submissionService interface {
	Submit(ctx context.Context, sub models.Submission) (*dto.SubmissionResponse, error)
}

type periodProvider interface {
	Current() models.AcademicPeriod
}

// SubmissionHandler serves the request form and accepts submissions.
type SubmissionHandler struct {
	service        submissionService
	periods        periodProvider
	maxUploadBytes int64
}

// NewSubmissionHandler constructs the handler.
func NewSubmissionHandler(service submissionService, periods periodProvider, maxUploadBytes int64) *SubmissionHandler {
	return &SubmissionHandler{service: service, periods: periods, maxUploadBytes: maxUploadBytes}
}

// FormPage renders the submission form with the current period banner.
func (h *SubmissionHandler) FormPage(c *gin.Context) {
	c.HTML(http.StatusOK, "form.html", gin.H{
		"Period":   h.periods.Current(),
		"Programs": models.Programs(),
	})
}

// Period returns the academic period computed from the wall clock.
func (h *SubmissionHandler) Period(c *gin.Context) {
	response.OK(c, h.periods.Current())
}

// Submit validates the multipart payload and runs the pipeline. Required
// fields are name, NIM, phone and the two validation images; nothing is
// rendered or sent when any of them is missing.
func (h *SubmissionHandler) Submit(c *gin.Context) {
	var req dto.SubmissionRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, validationMessage(err)))
		return
	}
	if req.Program != "" && !models.Program(req.Program).Valid() {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "unknown program of study"))
		return
	}

	ktm, err := h.readImage(c, "ktm")
	if err != nil {
		response.Error(c, err)
		return
	}
	proof, err := h.readImage(c, "paymentProof")
	if err != nil {
		response.Error(c, err)
		return
	}

	sub := models.Submission{
		ID:           uuid.NewString(),
		FullName:     strings.TrimSpace(req.FullName),
		NIM:          strings.TrimSpace(req.NIM),
		BirthPlace:   strings.TrimSpace(req.BirthPlace),
		BirthDate:    strings.TrimSpace(req.BirthDate),
		Program:      models.Program(req.Program),
		Semester:     strings.TrimSpace(req.Semester),
		Address:      strings.TrimSpace(req.Address),
		Phone:        strings.TrimSpace(req.Phone),
		KTM:          ktm,
		PaymentProof: proof,
		SubmittedAt:  time.Now(),
	}

	resp, err := h.service.Submit(c.Request.Context(), sub)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, resp)
}

func (h *SubmissionHandler) readImage(c *gin.Context, field string) (*models.Attachment, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s image is required", field))
	}
	if !allowedImageExt(fileHeader.Filename) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s must be a jpg, jpeg or png image", field))
	}
	if h.maxUploadBytes > 0 && fileHeader.Size > h.maxUploadBytes {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s exceeds the upload size limit", field))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open upload")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to buffer upload")
	}

	return &models.Attachment{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func allowedImageExt(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
		return "missing or invalid fields: " + strings.Join(fields, ", ")
	}
	return "invalid submission payload"
}
