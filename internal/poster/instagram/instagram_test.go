package instagram

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/Davincible/goinsta/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lookhub/internal/poster"
)

type fakeClient struct {
	uploads   []*goinsta.UploadOptions
	failFirst int
	logins    int
	exports   []string
	loginErr  error
}

func (f *fakeClient) Login(password ...string) error {
	f.logins++
	return f.loginErr
}

func (f *fakeClient) Export(path string) error {
	f.exports = append(f.exports, path)
	return nil
}

func (f *fakeClient) Upload(o *goinsta.UploadOptions) (*goinsta.Item, error) {
	f.uploads = append(f.uploads, o)
	if f.failFirst > 0 {
		f.failFirst--
		return nil, errors.New("login_required")
	}
	if o.File != nil {
		if _, err := io.ReadAll(o.File); err != nil {
			return nil, err
		}
	}
	return &goinsta.Item{}, nil
}

type fakeDownloader struct {
	dir   string
	paths []string
}

func (d *fakeDownloader) DownloadToTemp(ctx context.Context, urls []string, dir string) (*poster.TempFiles, error) {
	files := &poster.TempFiles{}
	for range urls {
		f, err := os.CreateTemp(d.dir, "look-*.jpg")
		if err != nil {
			return nil, err
		}
		_, _ = f.WriteString("jpeg")
		f.Close()
		files.Paths = append(files.Paths, f.Name())
	}
	d.paths = append(d.paths, files.Paths...)
	return files, nil
}

func newTestPublisher(t *testing.T, restored, fresh *fakeClient) (*Publisher, *fakeDownloader) {
	t.Helper()
	dir := t.TempDir()
	dl := &fakeDownloader{dir: dir}
	p, err := New(Config{
		Username:    "lookhub",
		Password:    "secret",
		SessionFile: filepath.Join(dir, "session.json"),
	}, dl)
	require.NoError(t, err)

	p.restore = func(path string) (Client, error) {
		if restored == nil {
			return nil, errors.New("corrupt session")
		}
		return restored, nil
	}
	p.fresh = func(username, password string) Client { return fresh }
	return p, dl
}

func snapshot(images ...string) *poster.LookSnapshot {
	return &poster.LookSnapshot{ID: 5, Name: "Город", Gender: "женский", Description: "<b>Лето</b>", ImageURLs: images}
}

func TestPublish_UsesSavedSession(t *testing.T) {
	restored := &fakeClient{}
	fresh := &fakeClient{}
	p, dl := newTestPublisher(t, restored, fresh)
	require.NoError(t, os.WriteFile(p.cfg.SessionFile, []byte("{}"), 0o600))

	require.NoError(t, p.Publish(context.Background(), snapshot("http://a/1.png")))

	require.Len(t, restored.uploads, 1)
	assert.NotNil(t, restored.uploads[0].File)
	assert.Equal(t, "Город\n\nЛето", restored.uploads[0].Caption)
	assert.Zero(t, fresh.logins)

	for _, path := range dl.paths {
		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err), "temporary files are removed")
	}
}

func TestPublish_ReloginAndRetryOnce(t *testing.T) {
	restored := &fakeClient{failFirst: 1}
	fresh := &fakeClient{}
	p, _ := newTestPublisher(t, restored, fresh)
	require.NoError(t, os.WriteFile(p.cfg.SessionFile, []byte("{}"), 0o600))

	require.NoError(t, p.Publish(context.Background(), snapshot("http://a/1.png", "http://a/2.png")))

	assert.Len(t, restored.uploads, 1)
	assert.Equal(t, 1, fresh.logins)
	assert.Equal(t, []string{p.cfg.SessionFile}, fresh.exports)
	require.Len(t, fresh.uploads, 1)
	assert.Len(t, fresh.uploads[0].Album, 2)
}

func TestPublish_SecondFailureSurfaces(t *testing.T) {
	fresh := &fakeClient{failFirst: 5}
	p, dl := newTestPublisher(t, nil, fresh)

	err := p.Publish(context.Background(), snapshot("http://a/1.png"))
	assert.Error(t, err)
	assert.Len(t, fresh.uploads, 1, "exactly one retry after re-login")

	for _, path := range dl.paths {
		_, statErr := os.Stat(path)
		assert.True(t, os.IsNotExist(statErr))
	}
}

func TestPublish_LoginFailure(t *testing.T) {
	fresh := &fakeClient{loginErr: errors.New("challenge required")}
	p, _ := newTestPublisher(t, nil, fresh)

	err := p.Publish(context.Background(), snapshot("http://a/1.png"))
	assert.ErrorContains(t, err, "instagram login")
	assert.Empty(t, fresh.uploads)
}

func TestPublish_NoImages(t *testing.T) {
	p, _ := newTestPublisher(t, nil, &fakeClient{})

	err := p.Publish(context.Background(), snapshot())
	assert.ErrorIs(t, err, poster.ErrPrecondition)
}

func TestNew_BuildsGoinstaClients(t *testing.T) {
	p, err := New(Config{Username: "lookhub", Password: "secret"}, &fakeDownloader{dir: t.TempDir()})
	require.NoError(t, err)

	assert.Equal(t, "session.json", p.cfg.SessionFile)
	assert.IsType(t, &goinsta.Instagram{}, p.fresh("lookhub", "secret"))
}
