package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"lookhub/internal/logger"
	"lookhub/internal/poster"
)

// maxGroupSize is the Telegram limit for one media group.
const maxGroupSize = 10

// Sender is the part of *tgbotapi.BotAPI used for posting.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	SendMediaGroup(config tgbotapi.MediaGroupConfig) ([]tgbotapi.Message, error)
}

// ImageFetcher downloads images by URL.
type ImageFetcher interface {
	FetchAll(ctx context.Context, imageURLs []string) ([][]byte, error)
}

// Publisher posts a look to a Telegram channel as a media group.
type Publisher struct {
	bot             Sender
	images          ImageFetcher
	chatID          int64
	channelUsername string
}

// New connects to the Bot API. channel is a numeric chat id or an @username.
func New(token, channel string, images ImageFetcher) (*Publisher, error) {
	if token == "" {
		return nil, errors.New("telegram bot token is not configured")
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	return NewWithSender(bot, channel, images)
}

func NewWithSender(bot Sender, channel string, images ImageFetcher) (*Publisher, error) {
	p := &Publisher{bot: bot, images: images}

	channel = strings.TrimSpace(channel)
	switch {
	case channel == "":
		return nil, errors.New("telegram channel id is not configured")
	case strings.HasPrefix(channel, "@"):
		p.channelUsername = channel
	default:
		id, err := strconv.ParseInt(channel, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("telegram channel id %q: %w", channel, err)
		}
		p.chatID = id
	}
	return p, nil
}

func (p *Publisher) Publish(ctx context.Context, look *poster.LookSnapshot) error {
	if len(look.ImageURLs) == 0 {
		return fmt.Errorf("%w: look without image urls is not supported", poster.ErrPrecondition)
	}

	// один пост на образ: лишние картинки не отправляются, иначе ретрай задачи продублирует уже ушедшие группы
	urls := look.ImageURLs
	if len(urls) > maxGroupSize {
		logger.CtxWarn(ctx, "Look has more images than one media group holds, extra images are skipped",
			"look_id", look.ID, "images", len(urls), "limit", maxGroupSize)
		urls = urls[:maxGroupSize]
	}

	images, err := p.images.FetchAll(ctx, urls)
	if err != nil {
		return err
	}
	caption := poster.TelegramCaption(look)

	if len(images) == 1 {
		photo := tgbotapi.NewPhoto(p.chatID, fileBytes(look.Name, 0, images[0]))
		photo.ChannelUsername = p.channelUsername
		photo.Caption = caption
		photo.ParseMode = tgbotapi.ModeHTML
		_, err := p.bot.Send(photo)
		return err
	}

	media := make([]interface{}, 0, len(images))
	for i, data := range images {
		photo := tgbotapi.NewInputMediaPhoto(fileBytes(look.Name, i, data))
		if i == 0 {
			photo.Caption = caption
			photo.ParseMode = tgbotapi.ModeHTML
		}
		media = append(media, photo)
	}

	_, err = p.bot.SendMediaGroup(tgbotapi.MediaGroupConfig{
		ChatID:          p.chatID,
		ChannelUsername: p.channelUsername,
		Media:           media,
	})
	return err
}

func fileBytes(name string, index int, data []byte) tgbotapi.FileBytes {
	return tgbotapi.FileBytes{Name: fmt.Sprintf("%s%d", name, index), Bytes: data}
}
