package poster

import (
	"context"
	"fmt"

	"lookhub/internal/email"
	"lookhub/internal/logger"
)

// EmailNotifier mails operators when a delivery fails for good.
type EmailNotifier struct {
	provider   email.Provider
	recipients []string
}

func NewEmailNotifier(provider email.Provider, recipients []string) *EmailNotifier {
	return &EmailNotifier{provider: provider, recipients: recipients}
}

func (n *EmailNotifier) NotifyFailure(ctx context.Context, r Result) {
	if len(n.recipients) == 0 {
		return
	}
	lookID := "?"
	if r.LookID != nil {
		lookID = fmt.Sprint(*r.LookID)
	}

	err := n.provider.SendTemplate(ctx, n.recipients,
		fmt.Sprintf("LookHub: look %s was not posted to %s", lookID, r.Service),
		email.TemplateDeliveryFailed,
		email.TemplateData{
			"LookID":  lookID,
			"Service": r.Service,
			"TaskID":  r.TaskID,
			"Error":   r.Error,
		})
	if err != nil {
		logger.CtxWarn(ctx, "Failed to send delivery alert", "error", err)
	}
}
