package app

import (
	"context"

	"gebeya_backend/internal/logger"
)

// logEmailSender stands in for SMTP in development: the message content
// is written to the log so OTP flows stay testable.
type logEmailSender struct{}

func (s *logEmailSender) SendOTP(to, name, code string) error {
	logger.Info("[email disabled] verification code", "to", to, "code", code)
	return nil
}

func (s *logEmailSender) SendWelcome(to, name string) error {
	logger.Info("[email disabled] welcome email", "to", to)
	return nil
}

// logSMSSender is the SMS equivalent.
type logSMSSender struct{}

func (s *logSMSSender) Send(ctx context.Context, phone, message string) error {
	logger.Info("[sms disabled] message", "phone", phone, "message", message)
	return nil
}
