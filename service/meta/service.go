package meta

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"gopkg.in/yaml.v3"
)

// Service loads YAML documents by URL, expanding ${env.KEY} expressions first
type Service struct {
	fs      afs.Service
	baseURL string
	options []storage.Option
}

// Download returns the expanded content of the resource at URL, relative URLs resolve against the base URL
func (s *Service) Download(ctx context.Context, URL string) ([]byte, error) {
	URL = s.resolve(URL)
	data, err := s.fs.DownloadWithURL(ctx, URL, s.options...)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", URL, err)
	}
	return []byte(ExpandEnv(string(data))), nil
}

// Load decodes the YAML resource at URL into target, e.g. *yaml.Node or a struct pointer
func (s *Service) Load(ctx context.Context, URL string, target interface{}) error {
	data, err := s.Download(ctx, URL)
	if err != nil {
		return err
	}
	if err = yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to decode %s: %w", s.resolve(URL), err)
	}
	return nil
}

func (s *Service) resolve(URL string) string {
	if s.baseURL == "" || strings.Contains(URL, "://") || strings.HasPrefix(URL, "/") {
		return URL
	}
	return strings.TrimRight(s.baseURL, "/") + "/" + path.Clean(URL)
}

// New creates a meta service; options are passed to every download, e.g. an embed.FS for embed:// URLs
func New(fs afs.Service, baseURL string, options ...storage.Option) *Service {
	if fs == nil {
		fs = afs.New()
	}
	return &Service{fs: fs, baseURL: baseURL, options: options}
}
