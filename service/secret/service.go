package secret

import (
	"context"
	"fmt"

	"github.com/viant/scy"
	_ "github.com/viant/scy/kms/blowfish"
)

// DefaultKey is the scy encryption key used when none is configured
const DefaultKey = "blowfish://default"

// Service reveals and stores encrypted registry credentials with viant/scy
type Service struct {
	scyService *scy.Service
}

// Reveal decrypts a raw secret stored at URL
func (s *Service) Reveal(ctx context.Context, URL, key string) (string, error) {
	resource := scy.NewResource(nil, URL, keyOrDefault(key))
	secret, err := s.scyService.Load(ctx, resource)
	if err != nil {
		return "", fmt.Errorf("failed to load secret from %s: %w", URL, err)
	}
	return secret.String(), nil
}

// Secure encrypts content and stores it at URL
func (s *Service) Secure(ctx context.Context, URL, key, content string) error {
	if content == "" {
		return fmt.Errorf("no content provided for secret %s", URL)
	}
	resource := scy.NewResource(nil, URL, keyOrDefault(key))
	if err := s.scyService.Store(ctx, scy.NewSecret(content, resource)); err != nil {
		return fmt.Errorf("failed to store encrypted secret at %s: %w", URL, err)
	}
	return nil
}

func keyOrDefault(key string) string {
	if key == "" {
		return DefaultKey
	}
	return key
}

// New creates a secret service
func New() *Service {
	return &Service{scyService: scy.New()}
}
