package app

import (
	"context"
	"fmt"
	"time"

	"lookhub/internal/config"
	"lookhub/internal/email"
	"lookhub/internal/logger"
	"lookhub/internal/poster"
	"lookhub/internal/poster/instagram"
	"lookhub/internal/poster/telegram"
)

// RunPoster runs the fan-out and delivery worker pool until ctx is cancelled.
func RunPoster(ctx context.Context, cfg *config.Config) error {
	b := newBroker(cfg)
	defer b.Close()
	if err := b.Ping(ctx); err != nil {
		return fmt.Errorf("broker unavailable: %w", err)
	}
	queue := poster.NewQueue(b)

	platforms, err := poster.ParsePlatforms(cfg.Poster.Platforms)
	if err != nil {
		return err
	}
	registry, err := BuildRegistry(cfg, platforms)
	if err != nil {
		return err
	}

	opts := []poster.DelivererOption{
		poster.WithMaxAttempts(cfg.Poster.MaxAttempts),
		poster.WithRetryDelay(time.Duration(cfg.Poster.RetryDelay) * time.Second),
	}
	if notifier := newFailureNotifier(cfg); notifier != nil {
		opts = append(opts, poster.WithFailureNotifier(notifier))
	}

	dispatcher := poster.NewDispatcher(queue, platforms)
	deliverer := poster.NewDeliverer(registry, queue, queue, opts...)

	logger.Info("Poster configured", "platforms", platforms, "workers", cfg.Poster.Workers)
	poster.NewWorker(queue, dispatcher, deliverer, cfg.Poster.Workers).Run(ctx)
	return nil
}

// BuildRegistry creates a publisher for every enabled platform.
func BuildRegistry(cfg *config.Config, platforms []poster.Platform) (poster.Registry, error) {
	downloader := poster.NewDownloader(
		time.Duration(cfg.Poster.DownloadTimeout)*time.Second,
		cfg.Poster.InternalHostAlias,
	)

	registry := make(poster.Registry, len(platforms))
	for _, p := range platforms {
		switch p {
		case poster.PlatformTelegram:
			pub, err := telegram.New(cfg.Telegram.BotToken, cfg.Telegram.ChannelID, downloader)
			if err != nil {
				return nil, fmt.Errorf("telegram: %w", err)
			}
			registry[p] = pub
		case poster.PlatformInstagram:
			pub, err := instagram.New(instagram.Config{
				Username:    cfg.Instagram.Username,
				Password:    cfg.Instagram.Password,
				SessionFile: cfg.Instagram.SessionFile,
			}, downloader)
			if err != nil {
				return nil, fmt.Errorf("instagram: %w", err)
			}
			registry[p] = pub
		default:
			return nil, fmt.Errorf("%w: %s", poster.ErrUnknownPlatform, p)
		}
	}
	return registry, nil
}

// newFailureNotifier returns nil when alert emails are not configured.
func newFailureNotifier(cfg *config.Config) poster.FailureNotifier {
	if len(cfg.Email.AlertTo) == 0 {
		return nil
	}
	provider := email.NewSMTPProvider(email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUser,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
	}, email.NewTemplateManager())
	if err := provider.Validate(); err != nil {
		logger.Warn("Alert emails disabled", "error", err)
		return nil
	}
	return poster.NewEmailNotifier(provider, cfg.Email.AlertTo)
}
