package poster

import (
	"context"
	"fmt"
	"strings"
)

type Platform string

const (
	PlatformTelegram  Platform = "telegram"
	PlatformInstagram Platform = "instagram"
)

// AllPlatforms is the static registry order used by the dispatcher.
var AllPlatforms = []Platform{PlatformTelegram, PlatformInstagram}

func (p Platform) String() string { return string(p) }

func (p Platform) IsValid() bool {
	for _, known := range AllPlatforms {
		if p == known {
			return true
		}
	}
	return false
}

// ParsePlatforms turns configured names into platforms, rejecting unknown ones.
func ParsePlatforms(names []string) ([]Platform, error) {
	out := make([]Platform, 0, len(names))
	seen := make(map[Platform]bool, len(names))
	for _, name := range names {
		p := Platform(strings.ToLower(strings.TrimSpace(name)))
		if p == "" {
			continue
		}
		if !p.IsValid() {
			return nil, fmt.Errorf("%w: %s", ErrUnknownPlatform, name)
		}
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out, nil
}

// Publisher posts one look to one platform.
type Publisher interface {
	Publish(ctx context.Context, look *LookSnapshot) error
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(ctx context.Context, look *LookSnapshot) error

func (f PublisherFunc) Publish(ctx context.Context, look *LookSnapshot) error {
	return f(ctx, look)
}

// Registry resolves a platform to its publisher.
type Registry map[Platform]Publisher

func (r Registry) Lookup(p Platform) (Publisher, error) {
	pub, ok := r[p]
	if !ok || pub == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlatform, p)
	}
	return pub, nil
}

// Platforms returns registered platforms in registry order.
func (r Registry) Platforms() []Platform {
	out := make([]Platform, 0, len(r))
	for _, p := range AllPlatforms {
		if _, ok := r[p]; ok {
			out = append(out, p)
		}
	}
	return out
}
