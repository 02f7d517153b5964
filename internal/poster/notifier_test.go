package poster

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lookhub/internal/email"
)

type fakeMailer struct {
	to       []string
	subject  string
	template string
	data     email.TemplateData
	err      error
}

func (m *fakeMailer) Send(ctx context.Context, e *email.Email) error { return nil }

func (m *fakeMailer) SendTemplate(ctx context.Context, to []string, subject, templateName string, data email.TemplateData) error {
	m.to, m.subject, m.template, m.data = to, subject, templateName, data
	return m.err
}

func (m *fakeMailer) Validate() error { return nil }

func TestEmailNotifier_SendsDeliveryFailed(t *testing.T) {
	mailer := &fakeMailer{}
	lookID := 12
	n := NewEmailNotifier(mailer, []string{"ops@example.com"})

	n.NotifyFailure(context.Background(), Result{
		Status: StatusError, TaskID: "t-9", LookID: &lookID, Service: PlatformInstagram, Error: "login required",
	})

	require.Equal(t, []string{"ops@example.com"}, mailer.to)
	assert.Equal(t, email.TemplateDeliveryFailed, mailer.template)
	assert.Equal(t, "LookHub: look 12 was not posted to instagram", mailer.subject)
	assert.Equal(t, "login required", mailer.data["Error"])
}

func TestEmailNotifier_NoRecipientsOrMailerError(t *testing.T) {
	mailer := &fakeMailer{}
	NewEmailNotifier(mailer, nil).NotifyFailure(context.Background(), Result{TaskID: "t"})
	assert.Empty(t, mailer.template, "без получателей письмо не отправляется")

	mailer.err = errors.New("smtp down")
	assert.NotPanics(t, func() {
		NewEmailNotifier(mailer, []string{"ops@example.com"}).NotifyFailure(context.Background(), Result{TaskID: "t"})
	})
	assert.Equal(t, "LookHub: look ? was not posted to ", mailer.subject)
}
