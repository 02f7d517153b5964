package instagram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/Davincible/goinsta/v3"

	"lookhub/internal/logger"
	"lookhub/internal/poster"
)

// Client is the part of *goinsta.Instagram used for posting.
type Client interface {
	Login(password ...string) error
	Export(path string) error
	Upload(o *goinsta.UploadOptions) (*goinsta.Item, error)
}

var _ Client = (*goinsta.Instagram)(nil)

// Downloader stores look images in temporary files.
type Downloader interface {
	DownloadToTemp(ctx context.Context, imageURLs []string, dir string) (*poster.TempFiles, error)
}

type Config struct {
	Username    string
	Password    string
	SessionFile string
	TempDir     string
}

// Publisher posts a look as a photo or an album.
type Publisher struct {
	cfg        Config
	downloader Downloader

	// restore loads a persisted session, fresh creates a logged-out client.
	restore func(path string) (Client, error)
	fresh   func(username, password string) Client

	mu     sync.Mutex
	client Client
}

func New(cfg Config, downloader Downloader) (*Publisher, error) {
	if cfg.Username == "" || cfg.Password == "" {
		return nil, errors.New("instagram credentials are not configured")
	}
	if cfg.SessionFile == "" {
		cfg.SessionFile = "session.json"
	}
	return &Publisher{
		cfg:        cfg,
		downloader: downloader,
		restore: func(path string) (Client, error) {
			return goinsta.Import(path)
		},
		fresh: func(username, password string) Client {
			return goinsta.New(username, password)
		},
	}, nil
}

func (p *Publisher) Publish(ctx context.Context, look *poster.LookSnapshot) error {
	if len(look.ImageURLs) == 0 {
		return fmt.Errorf("%w: look without image urls is not supported", poster.ErrPrecondition)
	}

	files, err := p.downloader.DownloadToTemp(ctx, look.ImageURLs, p.cfg.TempDir)
	if err != nil {
		return err
	}
	defer files.Remove()

	caption := poster.InstagramCaption(look)

	// goinsta clients are not safe for concurrent use
	p.mu.Lock()
	defer p.mu.Unlock()

	client, err := p.session()
	if err == nil {
		err = upload(client, files.Paths, caption)
		if err == nil {
			return nil
		}
	}

	logger.CtxWarn(ctx, "Instagram post failed, logging in again", "look_id", look.ID, "error", err)
	p.client = nil

	client = p.fresh(p.cfg.Username, p.cfg.Password)
	if err := client.Login(); err != nil {
		return fmt.Errorf("instagram login: %w", err)
	}
	if err := client.Export(p.cfg.SessionFile); err != nil {
		logger.CtxWarn(ctx, "Failed to persist instagram session", "error", err)
	}
	p.client = client

	return upload(client, files.Paths, caption)
}

// session returns the cached client or restores it from the session file.
func (p *Publisher) session() (Client, error) {
	if p.client != nil {
		return p.client, nil
	}
	if _, err := os.Stat(p.cfg.SessionFile); err != nil {
		return nil, fmt.Errorf("no saved session: %w", err)
	}
	client, err := p.restore(p.cfg.SessionFile)
	if err != nil {
		return nil, err
	}
	p.client = client
	return client, nil
}

func upload(client Client, paths []string, caption string) error {
	readers := make([]io.Reader, 0, len(paths))
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		readers = append(readers, f)
	}

	opts := &goinsta.UploadOptions{Caption: caption}
	if len(readers) == 1 {
		opts.File = readers[0]
	} else {
		opts.Album = readers
	}

	_, err := client.Upload(opts)
	return err
}
