package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendWelcomeEmail(ctx context.Context, toEmail, name string) error {
	args := m.Called(ctx, toEmail, name)
	return args.Error(0)
}

func (m *EmailService) SendSecurityAlertEmail(ctx context.Context, toEmail, name, title, message string) error {
	args := m.Called(ctx, toEmail, name, title, message)
	return args.Error(0)
}

func (m *EmailService) SendBanNoticeEmail(ctx context.Context, toEmail, name, reason string) error {
	args := m.Called(ctx, toEmail, name, reason)
	return args.Error(0)
}
