package dto

import (
	"strings"
)

const imagesPrefix = "/images/"

// ExternalImageURL turns a stored relative path into a public URL under host.
// Values that are already absolute are returned unchanged.
func ExternalImageURL(host, path string) string {
	if path == "" || strings.HasPrefix(path, "http") {
		return path
	}
	return strings.TrimRight(host, "/") + imagesPrefix + strings.TrimLeft(path, "/")
}

// StoragePath is the inverse of ExternalImageURL.
func StoragePath(host, url string) string {
	prefix := strings.TrimRight(host, "/") + imagesPrefix
	if strings.HasPrefix(url, prefix) {
		return strings.TrimPrefix(url, prefix)
	}
	if strings.HasPrefix(url, imagesPrefix) {
		return strings.TrimPrefix(url, imagesPrefix)
	}
	return url
}

func ExternalImageURLs(host string, paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, ExternalImageURL(host, p))
	}
	return out
}

func StoragePaths(host string, urls []string) []string {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		out = append(out, StoragePath(host, u))
	}
	return out
}
