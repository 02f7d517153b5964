package poster

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"time"
)

const DefaultInternalHostAlias = "nginx:80"

// RewriteLoopback replaces a localhost/127.0.0.1 host with alias so containers reach the catalog service.
func RewriteLoopback(rawURL, alias string) string {
	if alias == "" {
		return rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	switch u.Hostname() {
	case "localhost", "127.0.0.1":
		u.Host = alias
		return u.String()
	}
	return rawURL
}

// Downloader fetches look images for the platform publishers.
type Downloader struct {
	client *http.Client
	alias  string
}

func NewDownloader(timeout time.Duration, alias string) *Downloader {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Downloader{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext:         (&net.Dialer{Timeout: 10 * time.Second}).DialContext,
				TLSHandshakeTimeout: 10 * time.Second,
				MaxIdleConns:        20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		alias: alias,
	}
}

// Fetch downloads one image.
func (d *Downloader) Fetch(ctx context.Context, imageURL string) ([]byte, error) {
	target := RewriteLoopback(imageURL, d.alias)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}

	res, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", target, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("download %s: status %d", target, res.StatusCode)
	}
	return io.ReadAll(res.Body)
}

// FetchAll downloads images in order.
func (d *Downloader) FetchAll(ctx context.Context, imageURLs []string) ([][]byte, error) {
	out := make([][]byte, 0, len(imageURLs))
	for _, u := range imageURLs {
		data, err := d.Fetch(ctx, u)
		if err != nil {
			return nil, err
		}
		out = append(out, data)
	}
	return out, nil
}

// TempFiles holds downloaded images on disk; Remove must always be called.
type TempFiles struct {
	Paths []string
}

func (t *TempFiles) Remove() {
	for _, p := range t.Paths {
		_ = os.Remove(p)
	}
	t.Paths = nil
}

// DownloadToTemp stores each image in its own .jpg temporary file inside dir.
// On error the files created so far are already removed.
func (d *Downloader) DownloadToTemp(ctx context.Context, imageURLs []string, dir string) (*TempFiles, error) {
	files := &TempFiles{}
	for _, u := range imageURLs {
		data, err := d.Fetch(ctx, u)
		if err != nil {
			files.Remove()
			return nil, err
		}

		f, err := os.CreateTemp(dir, "look-*.jpg")
		if err != nil {
			files.Remove()
			return nil, err
		}
		files.Paths = append(files.Paths, f.Name())

		_, werr := f.Write(data)
		cerr := f.Close()
		if werr != nil || cerr != nil {
			files.Remove()
			if werr != nil {
				return nil, werr
			}
			return nil, cerr
		}
	}
	return files, nil
}
