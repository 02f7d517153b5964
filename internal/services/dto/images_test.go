package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImageURLs_RoundTrip(t *testing.T) {
	const host = "http://lookhub.test/"

	tests := []struct {
		name     string
		stored   string
		external string
	}{
		{"relative path", "a.png", "http://lookhub.test/images/a.png"},
		{"look image", "7-3f1c.png", "http://lookhub.test/images/7-3f1c.png"},
		{"absolute url", "https://x/y.jpg", "https://x/y.jpg"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			external := ExternalImageURL(host, tt.stored)
			assert.Equal(t, tt.external, external)
			assert.Equal(t, tt.stored, StoragePath(host, external))
		})
	}
}

func TestStoragePath_AcceptsBarePrefix(t *testing.T) {
	assert.Equal(t, "a.png", StoragePath("http://other.host", "/images/a.png"))
	assert.Equal(t, "https://x/y.jpg", StoragePath("http://lookhub.test", "https://x/y.jpg"))
}

func TestImageURLs_Slices(t *testing.T) {
	paths := []string{"a.png", "https://x/y.jpg"}
	urls := ExternalImageURLs("http://lookhub.test", paths)

	assert.Equal(t, []string{"http://lookhub.test/images/a.png", "https://x/y.jpg"}, urls)
	assert.Equal(t, paths, StoragePaths("http://lookhub.test", urls))
}
