package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"

	"github.com/iainkerinci/ska-api/internal/dto"
	"github.com/iainkerinci/ska-api/internal/models"
	appErrors "github.com/iainkerinci/ska-api/pkg/errors"
	"github.com/iainkerinci/ska-api/pkg/render"
)

// Submission statuses reported back to the submitter.
const (
	StatusDelivered      = "delivered"
	StatusDeliveredPlain = "delivered_plain"
)

// adminGreeting is pre-filled into the admin's wa.me link so the finished
// certificate can be announced to the student without typing.
const adminGreeting = "Assalamualaikum, Surat Keterangan Aktif Kuliah Anda sudah selesai diproses."

type documentRenderer interface {
	Render(ctx render.Context) ([]byte, error)
}

type notifier interface {
	Dispatch(ctx context.Context, in DispatchInput) (*DispatchResult, error)
}

// SubmissionService runs the request pipeline: merge the academic period
// into the render context, fill the certificate, dispatch it to the admin.
type SubmissionService struct {
	periods  *PeriodService
	renderer documentRenderer
	notifier notifier
	logger   *zap.Logger
	metrics  *MetricsService
}

// NewSubmissionService constructs the service.
func NewSubmissionService(periods *PeriodService, renderer documentRenderer, notifier notifier, logger *zap.Logger, metrics *MetricsService) *SubmissionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmissionService{
		periods:  periods,
		renderer: renderer,
		notifier: notifier,
		logger:   logger,
		metrics:  metrics,
	}
}

// Submit renders and dispatches one submission. Render errors abort before
// any network call; nothing partial is ever sent.
func (s *SubmissionService) Submit(ctx context.Context, sub models.Submission) (*dto.SubmissionResponse, error) {
	period := s.periods.Current()

	renderCtx := render.Context{
		Name:         strings.ToUpper(sub.FullName),
		NIM:          sub.NIM,
		BirthPlace:   sub.BirthPlace,
		BirthDate:    sub.BirthDate,
		Program:      string(sub.Program),
		Semester:     sub.Semester,
		Address:      sub.Address,
		AcademicYear: period.AcademicYear,
		MonthRoman:   period.MonthRoman,
		Year:         period.Year,
		IssuedDate:   period.LongDate,
	}

	start := time.Now()
	document, err := s.renderer.Render(renderCtx)
	if err != nil {
		s.metrics.RecordSubmission("failed")
		// The raw detail is surfaced so the submitter can report it.
		return nil, appErrors.Wrap(err, appErrors.ErrRender.Code, appErrors.ErrRender.Status, err.Error())
	}
	s.metrics.ObserveRender(time.Since(start))

	filename := certificateFilename(sub)
	waLink := WhatsAppLink(sub.Phone)

	in := DispatchInput{
		SubmissionID: sub.ID,
		Filename:     filename,
		Document:     document,
		Caption: AdminCaption{
			StudentName: sub.FullName,
			Program:     string(sub.Program),
			// The admin's link pre-fills the reply so delivery is one tap.
			WhatsAppLink: WhatsAppLinkWithText(sub.Phone, adminGreeting),
		},
	}
	if sub.KTM != nil {
		in.Images = append(in.Images, DispatchImage{Label: ImageLabelKTM, Attachment: *sub.KTM})
	}
	if sub.PaymentProof != nil {
		in.Images = append(in.Images, DispatchImage{Label: ImageLabelPayment, Attachment: *sub.PaymentProof})
	}

	result, err := s.notifier.Dispatch(ctx, in)
	if err != nil {
		s.metrics.RecordSubmission("failed")
		return nil, appErrors.Wrap(err, appErrors.ErrDelivery.Code, appErrors.ErrDelivery.Status, appErrors.ErrDelivery.Message)
	}

	s.metrics.RecordSubmission("accepted")
	s.logger.Info("submission dispatched",
		zap.String("submission_id", sub.ID),
		zap.String("filename", filename),
		zap.Bool("plain_fallback", result.PlainFallback),
		zap.Int("image_failures", result.ImageFailures),
	)

	status := StatusDelivered
	if result.PlainFallback {
		status = StatusDeliveredPlain
	}
	return &dto.SubmissionResponse{
		ID:           sub.ID,
		Filename:     filename,
		Status:       status,
		WhatsAppLink: waLink,
		Period:       period,
	}, nil
}

// certificateFilename follows the SKA_<nim>[_<first-name-alnum>].docx
// convention.
func certificateFilename(sub models.Submission) string {
	first := firstNameAlnum(sub.FullName)
	if first == "" {
		return fmt.Sprintf("SKA_%s.docx", sub.NIM)
	}
	return fmt.Sprintf("SKA_%s_%s.docx", sub.NIM, first)
}

func firstNameAlnum(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	var b strings.Builder
	for _, r := range fields[0] {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
