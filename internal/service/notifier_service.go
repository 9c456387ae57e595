package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/iainkerinci/ska-api/internal/models"
	"github.com/iainkerinci/ska-api/pkg/telegram"
)

// Image labels used in attachment captions.
const (
	ImageLabelKTM     = "Foto KTM"
	ImageLabelPayment = "Bukti Pembayaran"
)

// fallbackPrefix flags a caption whose HTML variant was rejected.
const fallbackPrefix = "[FORMAT GAGAL] "

type botAPI interface {
	SendDocument(ctx context.Context, doc telegram.Document) error
	SendPhoto(ctx context.Context, photo telegram.Photo) error
}

// DispatchImage pairs an uploaded validation image with its caption label.
type DispatchImage struct {
	Label      string
	Attachment models.Attachment
}

// DispatchInput is the transient payload for one delivery to the admin chat.
type DispatchInput struct {
	SubmissionID string
	Filename     string
	Document     []byte
	Caption      AdminCaption
	Images       []DispatchImage
}

// DispatchResult reports how the delivery went.
type DispatchResult struct {
	PlainFallback bool
	ImageFailures int
}

// NotifierService delivers a rendered certificate plus validation images to
// the fixed administrator chat.
type NotifierService struct {
	bot     botAPI
	chatID  string
	logger  *zap.Logger
	metrics *MetricsService
}

// NewNotifierService constructs the notifier.
func NewNotifierService(bot botAPI, chatID string, logger *zap.Logger, metrics *MetricsService) *NotifierService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotifierService{bot: bot, chatID: chatID, logger: logger, metrics: metrics}
}

// Dispatch sends the document with the rich caption; if the Bot API rejects
// it, exactly one retry goes out with the plain caption so a formatting
// error never prevents file delivery. Image sends follow independently:
// a failed image is logged and skipped, never failing the submission.
func (s *NotifierService) Dispatch(ctx context.Context, in DispatchInput) (*DispatchResult, error) {
	result := &DispatchResult{}

	doc := telegram.Document{
		ChatID:    s.chatID,
		Filename:  in.Filename,
		Caption:   in.Caption.Rich(),
		ParseMode: telegram.ParseModeHTML,
		Data:      in.Document,
	}
	err := s.bot.SendDocument(ctx, doc)

	var apiErr *telegram.APIError
	if errors.As(err, &apiErr) {
		s.logger.Warn("rich caption rejected, retrying with plain caption",
			zap.String("submission_id", in.SubmissionID),
			zap.Int("status", apiErr.Status),
			zap.String("description", apiErr.Description),
		)
		doc.Caption = fallbackPrefix + in.Caption.Plain()
		doc.ParseMode = ""
		result.PlainFallback = true
		err = s.bot.SendDocument(ctx, doc)
	}
	if err != nil {
		s.metrics.RecordDispatch("failed")
		return nil, fmt.Errorf("send document: %w", err)
	}
	if result.PlainFallback {
		s.metrics.RecordDispatch("delivered_plain")
	} else {
		s.metrics.RecordDispatch("delivered")
	}

	for _, img := range in.Images {
		photo := telegram.Photo{
			ChatID:   s.chatID,
			Filename: img.Attachment.Filename,
			Caption:  fmt.Sprintf("%s untuk %s", img.Label, in.Filename),
			Data:     img.Attachment.Data,
		}
		if err := s.bot.SendPhoto(ctx, photo); err != nil {
			result.ImageFailures++
			s.metrics.RecordAttachmentFailure()
			s.logger.Warn("validation image delivery failed",
				zap.String("submission_id", in.SubmissionID),
				zap.String("label", img.Label),
				zap.Error(err),
			)
		}
	}

	return result, nil
}
