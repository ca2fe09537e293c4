package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"opportunity-admin-backend/config"
	"opportunity-admin-backend/db/models"
	"opportunity-admin-backend/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeErrorReportEmail = "email:error_report"

// ErrorReportEmailPayload carries everything the worker needs to deliver a
// bulk upload error report
type ErrorReportEmailPayload struct {
	Email        string `json:"email"`
	FileName     string `json:"file_name"`
	DownloadLink string `json:"download_link"`
	InvalidRows  int    `json:"invalid_rows"`
	WarningRows  int    `json:"warning_rows"`
}

// EmailSentLogger records delivered emails; the opportunity repository
// satisfies it.
type EmailSentLogger interface {
	LogEmailSent(emailLog *models.EmailLog) error
}

func NewErrorReportEmailTask(payload ErrorReportEmailPayload) (*asynq.Task, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal error report payload: %w", err)
	}
	return asynq.NewTask(TypeErrorReportEmail, raw, asynq.MaxRetry(3), asynq.Timeout(time.Minute)), nil
}

type ErrorReportEmailHandler struct {
	EmailLog EmailSentLogger
}

func NewErrorReportEmailHandler(emailLog EmailSentLogger) *ErrorReportEmailHandler {
	return &ErrorReportEmailHandler{EmailLog: emailLog}
}

func (h *ErrorReportEmailHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload ErrorReportEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal error report payload: %w", err)
	}

	subject := "Bulk upload error report"
	message := fmt.Sprintf(
		"Your upload %q has %d rows with errors and %d rows with warnings. The attached report lists each issue.",
		payload.FileName, payload.InvalidRows, payload.WarningRows)

	if err := utils.SendEmail(payload.Email, message, subject, payload.DownloadLink); err != nil {
		return fmt.Errorf("failed to send error report email: %w", err)
	}

	if h.EmailLog != nil {
		if err := h.EmailLog.LogEmailSent(&models.EmailLog{
			Recipient:      payload.Email,
			Subject:        subject,
			Message:        message,
			SentAt:         time.Now(),
			AttachmentPath: payload.DownloadLink,
		}); err != nil {
			config.Logger.Warn("Error report email sent but not logged",
				zap.String("recipient", payload.Email),
				zap.Error(err))
		}
	}

	config.Logger.Info("Error report email delivered",
		zap.String("recipient", payload.Email),
		zap.String("fileName", payload.FileName))
	return nil
}

// StartWorker runs the asynq server in the background and returns it so the
// caller can shut it down
func StartWorker(redisAddr string, emailLog EmailSentLogger) *asynq.Server {
	mux := asynq.NewServeMux()
	mux.Handle(TypeErrorReportEmail, NewErrorReportEmailHandler(emailLog))

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: 5,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				config.Logger.Error("Background task failed",
					zap.String("type", task.Type()),
					zap.Error(err))
			}),
		},
	)

	go func() {
		if err := srv.Run(mux); err != nil {
			config.Logger.Fatal("Task worker failed", zap.Error(err))
		}
	}()

	return srv
}
