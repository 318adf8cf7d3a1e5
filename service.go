package omlflow

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/omlflow/model/flow"
	"github.com/viant/omlflow/service/converter"
	ymlconverter "github.com/viant/omlflow/service/converter/yml"
	daoflow "github.com/viant/omlflow/service/dao/flow"
	"github.com/viant/omlflow/service/meta"
	"github.com/viant/omlflow/service/registry"
	"github.com/viant/omlflow/service/registry/memory"
	"github.com/viant/omlflow/service/registry/rest"
	"github.com/viant/omlflow/service/secret"
	"go.alis.build/alog"
)

// Service wires flow codec, converter and registry synchronisation
type Service struct {
	config        *Config
	fs            afs.Service
	fsOptions     []storage.Option
	baseURL       string
	metaService   *meta.Service
	secretService *secret.Service
	codec         *daoflow.Service
	converter     converter.Converter
	caller        registry.Caller
	registry      *registry.Service
}

// Registry returns the registry synchronisation service
func (s *Service) Registry() *registry.Service {
	return s.registry
}

// Codec returns the flow XML codec
func (s *Service) Codec() *daoflow.Service {
	return s.codec
}

// Config returns the effective configuration
func (s *Service) Config() *Config {
	return s.config
}

// CreateFromModel converts a model into a flow with the configured converter
func (s *Service) CreateFromModel(model interface{}, description *string) (*flow.Flow, error) {
	return converter.CreateFromModel(model, s.converter, description)
}

// LoadFlow loads a flow from an XML document, or from a YAML model description for .yaml/.yml URLs
func (s *Service) LoadFlow(ctx context.Context, URL string) (*flow.Flow, error) {
	switch strings.ToLower(path.Ext(URL)) {
	case ".yaml", ".yml":
		data, err := s.metaService.Download(ctx, URL)
		if err != nil {
			return nil, err
		}
		return s.CreateFromModel(data, nil)
	}
	return s.codec.Load(ctx, s.resolve(URL))
}

// SaveFlow stores a flow as an XML document
func (s *Service) SaveFlow(ctx context.Context, URL string, aFlow *flow.Flow) error {
	return s.codec.Save(ctx, s.resolve(URL), aFlow)
}

// Sync loads a flow and makes sure the registry knows it, returning the registry id
func (s *Service) Sync(ctx context.Context, URL string) (*flow.Flow, int, error) {
	aFlow, err := s.LoadFlow(ctx, URL)
	if err != nil {
		return nil, 0, err
	}
	id, err := s.registry.EnsureExists(ctx, aFlow)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to sync flow %v: %w", aFlow.GetName(), err)
	}
	alog.Infof(ctx, "flow %v from %v has registry id %v", aFlow.GetName(), URL, id)
	return aFlow, id, nil
}

// StoreAPIKey encrypts the API key at the configured secret URL
func (s *Service) StoreAPIKey(ctx context.Context, apiKey string) error {
	if s.config.Registry.APIKeySecretURL == "" {
		return fmt.Errorf("%w: registry.apiKeySecretURL was empty", flow.ErrInvalidArgument)
	}
	return s.secretService.Secure(ctx, s.config.Registry.APIKeySecretURL, s.config.Registry.APIKeySecretKey, apiKey)
}

func (s *Service) resolve(URL string) string {
	if s.baseURL == "" || strings.Contains(URL, "://") || strings.HasPrefix(URL, "/") {
		return URL
	}
	return strings.TrimRight(s.baseURL, "/") + "/" + URL
}

func (s *Service) init(ctx context.Context, options []Option) error {
	for _, option := range options {
		option(s)
	}
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if err := s.config.Validate(); err != nil {
		return err
	}
	if s.fs == nil {
		s.fs = afs.New()
	}
	if s.metaService == nil {
		s.metaService = meta.New(s.fs, s.baseURL, s.fsOptions...)
	}
	if s.secretService == nil {
		s.secretService = secret.New()
	}
	if s.codec == nil {
		s.codec = daoflow.New(daoflow.WithFS(s.fs))
	}
	if s.converter == nil {
		s.converter = ymlconverter.New()
	}
	if s.caller == nil {
		caller, err := s.newCaller(ctx)
		if err != nil {
			return err
		}
		s.caller = caller
	}
	var registryOptions = []registry.Option{registry.WithCodec(s.codec)}
	if pkg := s.config.Registry.VersionPackage; pkg != "" {
		registryOptions = append(registryOptions, registry.WithVersionFunc(registry.PackageVersion(pkg)))
	}
	s.registry = registry.New(s.caller, registryOptions...)
	return nil
}

func (s *Service) newCaller(ctx context.Context) (registry.Caller, error) {
	cfg := s.config.Registry
	if cfg.IsMemory() {
		return memory.New(memory.WithCodec(s.codec)), nil
	}
	apiKey := cfg.APIKey
	if cfg.APIKeySecretURL != "" {
		var err error
		if apiKey, err = s.secretService.Reveal(ctx, cfg.APIKeySecretURL, cfg.APIKeySecretKey); err != nil {
			return nil, fmt.Errorf("failed to reveal registry api key: %w", err)
		}
	}
	if apiKey == "" {
		alog.Warnf(ctx, "no api key configured for %v, uploads will be rejected", cfg.URL)
	}
	return rest.New(cfg.URL, apiKey, rest.WithTimeout(time.Duration(cfg.TimeoutMs)*time.Millisecond)), nil
}

// New creates a service; the API key secret, when configured, is revealed with ctx
func New(ctx context.Context, options ...Option) (*Service, error) {
	ret := &Service{}
	if err := ret.init(ctx, options); err != nil {
		return nil, err
	}
	return ret, nil
}
