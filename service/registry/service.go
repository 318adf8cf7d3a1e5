package registry

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/viant/omlflow/model/document"
	"github.com/viant/omlflow/model/flow"
	daoflow "github.com/viant/omlflow/service/dao/flow"
	"github.com/viant/omlflow/tracing"
	"go.alis.build/alog"
)

const (
	// NotExistsID is returned by the exists call for an unknown flow
	NotExistsID = "-1"

	uploadPath = "flow/"
	existsPath = "flow/exists/"
	flowPath   = "flow/"
)

// Service synchronises flows with the registry
type Service struct {
	caller      Caller
	codec       *daoflow.Service
	versionFunc VersionFunc
}

// Publish uploads a flow and assigns the registry id to it
func (s *Service) Publish(ctx context.Context, aFlow *flow.Flow) (ret *flow.Flow, err error) {
	if aFlow == nil {
		return nil, fmt.Errorf("%w: flow was nil", flow.ErrInvalidArgument)
	}
	if aFlow.ID != nil {
		return nil, fmt.Errorf("%w: flow %v has id %v", flow.ErrAlreadyPublished, aFlow.GetName(), *aFlow.ID)
	}
	ctx, span := tracing.StartSpan(ctx, "registry.publish", tracing.KindInternal)
	span.WithAttributes(map[string]string{"flow.name": aFlow.GetName(), "flow.external_version": aFlow.ExternalVersion})
	defer func() { tracing.EndSpan(span, err) }()

	description, err := s.codec.EncodeXML(aFlow)
	if err != nil {
		return nil, err
	}
	body, err := s.call(ctx, uploadPath, map[string]string{"description": description})
	if err != nil {
		return nil, err
	}
	id, err := responseID(body, "oml:upload_flow")
	if err != nil {
		return nil, err
	}
	flowID, err := strconv.Atoi(id)
	if err != nil {
		return nil, fmt.Errorf("invalid uploaded flow id %q: %w", id, err)
	}
	aFlow.ID = &flowID
	alog.Infof(ctx, "published flow %v (%v) with id %v", aFlow.GetName(), aFlow.ExternalVersion, flowID)
	return aFlow, nil
}

// EnsureExists returns the registry id of the flow, publishing the flow when it is unknown
func (s *Service) EnsureExists(ctx context.Context, aFlow *flow.Flow) (int, error) {
	if aFlow == nil {
		return 0, fmt.Errorf("%w: flow was nil", flow.ErrInvalidArgument)
	}
	version, err := s.versionFunc(aFlow)
	if err != nil {
		return 0, err
	}
	id, err := s.CheckExists(ctx, aFlow.GetName(), version)
	if err != nil {
		return 0, err
	}
	if id == NotExistsID {
		alog.Debugf(ctx, "flow %v (%v) does not exist, publishing", aFlow.GetName(), version)
		if _, err = s.Publish(ctx, aFlow); err != nil {
			return 0, err
		}
		return *aFlow.ID, nil
	}
	ret, err := strconv.Atoi(id)
	if err != nil {
		return 0, fmt.Errorf("invalid existing flow id %q: %w", id, err)
	}
	alog.Debugf(ctx, "flow %v (%v) exists with id %v", aFlow.GetName(), version, ret)
	return ret, nil
}

// CheckExists returns the registry id of a flow, or NotExistsID when the registry does not know it
func (s *Service) CheckExists(ctx context.Context, name, version string) (ret string, err error) {
	if name == "" || version == "" {
		return "", fmt.Errorf("%w: flow name and version are required, but had name: %q, version: %q", flow.ErrInvalidArgument, name, version)
	}
	ctx, span := tracing.StartSpan(ctx, "registry.exists", tracing.KindInternal)
	defer func() { tracing.EndSpan(span, err) }()

	body, err := s.call(ctx, existsPath+url.PathEscape(name)+"/"+url.PathEscape(version), nil)
	if err != nil {
		return "", err
	}
	return responseID(body, "oml:flow_exists")
}

// Get downloads a flow by registry id
func (s *Service) Get(ctx context.Context, id int) (ret *flow.Flow, err error) {
	ctx, span := tracing.StartSpan(ctx, "registry.get", tracing.KindInternal)
	defer func() { tracing.EndSpan(span, err) }()

	body, err := s.call(ctx, flowPath+strconv.Itoa(id), nil)
	if err != nil {
		return nil, err
	}
	if ret, err = s.codec.DecodeXML([]byte(body)); err != nil {
		return nil, fmt.Errorf("failed to decode flow %v: %w", id, err)
	}
	return ret, nil
}

func (s *Service) call(ctx context.Context, path string, files map[string]string) (string, error) {
	status, body, err := s.caller.Call(ctx, path, files)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		alog.Warnf(ctx, "registry call %v failed with status %v", path, status)
		return "", &RemoteError{Path: path, StatusCode: status, Body: body}
	}
	return body, nil
}

// responseID reads <root><oml:id>..</oml:id></root>
func responseID(body, root string) (string, error) {
	doc, err := document.Unmarshal([]byte(body))
	if err != nil {
		return "", fmt.Errorf("invalid %v response: %w", root, err)
	}
	response, ok := doc.Element(root)
	if !ok {
		return "", fmt.Errorf("%w: %v", flow.ErrMissingField, root)
	}
	id, ok, err := response.Text("oml:id")
	if err != nil {
		return "", fmt.Errorf("invalid %v response: %w", root, err)
	}
	if !ok {
		return "", fmt.Errorf("%w: %v/oml:id", flow.ErrMissingField, root)
	}
	return id, nil
}

// New creates a registry service
func New(caller Caller, options ...Option) *Service {
	ret := &Service{caller: caller}
	for _, opt := range options {
		opt(ret)
	}
	if ret.codec == nil {
		ret.codec = daoflow.New()
	}
	if ret.versionFunc == nil {
		ret.versionFunc = ExternalVersion
	}
	return ret
}
