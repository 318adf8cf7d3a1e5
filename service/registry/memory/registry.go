package memory

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/viant/omlflow/internal/clock"
	"github.com/viant/omlflow/model/document"
	"github.com/viant/omlflow/model/flow"
	"github.com/viant/omlflow/service/dao"
	"github.com/viant/omlflow/service/dao/criteria"
	daoflow "github.com/viant/omlflow/service/dao/flow"
	"github.com/viant/omlflow/service/dao/flow/dependencies"
	"github.com/viant/omlflow/service/dao/store"
	"go.alis.build/alog"
)

// Registry is an in-memory registry answering the same calls as the REST API
type Registry struct {
	mu       sync.Mutex
	flows    *store.MemoryStore[int, flow.Flow]
	codec    *daoflow.Service
	uploader string
	lastID   int
	calls    []string
}

// Call serves flow/ uploads, flow/exists/<name>/<version> and flow/<id> reads
func (r *Registry) Call(ctx context.Context, path string, files map[string]string) (int, string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, path)
	switch {
	case path == "flow/" && len(files) > 0:
		return r.upload(ctx, files)
	case strings.HasPrefix(path, "flow/exists/") && len(files) == 0:
		return r.exists(ctx, strings.TrimPrefix(path, "flow/exists/"))
	case strings.HasPrefix(path, "flow/") && len(files) == 0:
		return r.get(ctx, strings.TrimPrefix(path, "flow/"))
	}
	return errorResponse(http.StatusNotFound, "Unknown call "+path)
}

// Calls returns called paths in call order
func (r *Registry) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.calls...)
}

func (r *Registry) upload(ctx context.Context, files map[string]string) (int, string, error) {
	description, ok := files["description"]
	if !ok {
		return errorResponse(http.StatusBadRequest, "Missing description file")
	}
	aFlow, err := r.codec.DecodeXML([]byte(description))
	if err != nil {
		return errorResponse(http.StatusBadRequest, "Problem validating uploaded description file: "+err.Error())
	}
	versions, err := r.flows.List(ctx, dao.NewParameter("name", aFlow.Name))
	if err != nil {
		return 0, "", err
	}
	for _, candidate := range versions {
		if candidate.ExternalVersion == aFlow.ExternalVersion {
			return errorResponse(http.StatusPreconditionFailed, fmt.Sprintf("Flow already exists, id: %v", *candidate.ID))
		}
	}
	r.lastID++
	id := r.lastID
	aFlow.ID = &id
	uploader := r.uploader
	aFlow.Uploader = &uploader
	version := strconv.Itoa(len(versions) + 1)
	aFlow.Version = &version
	uploadDate := clock.Timestamp()
	aFlow.UploadDate = &uploadDate
	if err = r.flows.Save(ctx, aFlow); err != nil {
		return 0, "", err
	}
	alog.Debugf(ctx, "memory registry stored flow %v (%v) with id %v", aFlow.Name, aFlow.ExternalVersion, id)
	return idResponse("oml:upload_flow", strconv.Itoa(id))
}

func (r *Registry) exists(ctx context.Context, location string) (int, string, error) {
	parts := strings.Split(location, "/")
	if len(parts) != 2 {
		return errorResponse(http.StatusPreconditionFailed, "Illegal flow name or version")
	}
	name, err := url.PathUnescape(parts[0])
	if err != nil {
		return errorResponse(http.StatusPreconditionFailed, "Illegal flow name")
	}
	version, err := url.PathUnescape(parts[1])
	if err != nil {
		return errorResponse(http.StatusPreconditionFailed, "Illegal flow version")
	}
	candidates, err := r.flows.List(ctx, dao.NewParameter("name", name))
	if err != nil {
		return 0, "", err
	}
	for _, candidate := range candidates {
		if candidate.ExternalVersion == version || pinsVersion(candidate, version) {
			return idResponse("oml:flow_exists", strconv.Itoa(*candidate.ID))
		}
	}
	return idResponse("oml:flow_exists", "-1")
}

// pinsVersion returns true when version has the <package>_<pinned version> form of one of the flow dependencies
func pinsVersion(aFlow *flow.Flow, version string) bool {
	if aFlow.Dependencies == nil {
		return false
	}
	requirements, err := dependencies.Parse([]byte(*aFlow.Dependencies))
	if err != nil {
		return false
	}
	for _, requirement := range requirements {
		if requirement.Version != "" && requirement.Name+"_"+requirement.Version == version {
			return true
		}
	}
	return false
}

func (r *Registry) get(ctx context.Context, location string) (int, string, error) {
	id, err := strconv.Atoi(location)
	if err != nil {
		return errorResponse(http.StatusNotFound, "Unknown call flow/"+location)
	}
	aFlow, err := r.flows.Load(ctx, id)
	if errors.Is(err, dao.ErrNotFound) {
		return errorResponse(http.StatusPreconditionFailed, "Unknown flow")
	}
	if err != nil {
		return 0, "", err
	}
	body, err := r.codec.EncodeXML(aFlow)
	if err != nil {
		return 0, "", err
	}
	return http.StatusOK, body, nil
}

func idResponse(root, id string) (int, string, error) {
	return render(http.StatusOK, document.NewElement().Put(root, document.NewElement().
		Put("@xmlns:oml", daoflow.Namespace).
		Put("oml:id", id)))
}

func errorResponse(status int, message string) (int, string, error) {
	return render(status, document.NewElement().Put("oml:error", document.NewElement().
		Put("@xmlns:oml", daoflow.Namespace).
		Put("oml:code", strconv.Itoa(status)).
		Put("oml:message", message)))
}

func render(status int, doc *document.Element) (int, string, error) {
	data, err := document.Marshal(doc, 0)
	if err != nil {
		return 0, "", err
	}
	return status, string(data), nil
}

// New creates an empty in-memory registry
func New(options ...Option) *Registry {
	ret := &Registry{uploader: "1"}
	for _, opt := range options {
		opt(ret)
	}
	if ret.codec == nil {
		ret.codec = daoflow.New()
	}
	ret.flows = store.NewMemoryStore[int, flow.Flow](func(f *flow.Flow) int { return *f.ID }, func(f *flow.Flow, parameters []*dao.Parameter) bool {
		return criteria.Match(map[string]string{"name": f.Name, "external_version": f.ExternalVersion}, parameters)
	})
	return ret
}
