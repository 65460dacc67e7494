package service

import (
	"context"
	"fmt"

	"user-management/internal/config/env"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// EmailService implements Notifier. Actual delivery is the mail
// infrastructure's concern; this hands the reset link off and records it.
type EmailService struct {
	log    *logrus.Logger
	config *env.Config
	tracer trace.Tracer
}

func NewEmailService(log *logrus.Logger, config *env.Config) *EmailService {
	return &EmailService{log, config, otel.Tracer("EmailService")}
}

func (s *EmailService) SendResetPasswordEmail(ctx context.Context, email, token string) error {
	spanCtx, span := s.tracer.Start(ctx, "EmailService.SendResetPasswordEmail")
	defer span.End()

	resetLink := fmt.Sprintf("%s?token=%s", s.config.Mail.ResetURL, token)

	s.log.WithContext(spanCtx).WithFields(logrus.Fields{
		"email": email,
		"link":  resetLink,
	}).Info("Dispatching reset password email")

	return nil
}
