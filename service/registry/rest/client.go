package rest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/viant/omlflow/internal/idgen"
	"github.com/viant/omlflow/tracing"
	"go.alis.build/alog"
)

const (
	// APIKeyField carries the registry API key as a form field or query parameter
	APIKeyField = "api_key"
	// RequestIDHeader carries a unique id of each request
	RequestIDHeader = "X-Request-Id"

	defaultTimeout = 60 * time.Second
)

// Client calls the registry REST API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Call issues a GET when files is empty, otherwise a multipart POST with every file uploaded as <name>.xml
func (c *Client) Call(ctx context.Context, path string, files map[string]string) (status int, body string, err error) {
	method := http.MethodGet
	if len(files) > 0 {
		method = http.MethodPost
	}
	ctx, span := tracing.StartSpan(ctx, method+" "+path, tracing.KindClient)
	defer func() {
		if err != nil {
			tracing.EndSpan(span, err)
			return
		}
		span.SetStatusFromHTTPCode(status)
		span.End()
	}()

	request, err := c.newRequest(ctx, method, path, files)
	if err != nil {
		return 0, "", err
	}
	requestID := idgen.New()
	request.Header.Set(RequestIDHeader, requestID)
	span.WithAttributes(map[string]string{"http.method": method, "registry.path": path, "request.id": requestID})

	alog.Debugf(ctx, "registry %v %v [%v]", method, path, requestID)
	response, err := c.httpClient.Do(request)
	if err != nil {
		return 0, "", fmt.Errorf("failed to call registry %v: %w", path, err)
	}
	defer response.Body.Close()
	data, err := io.ReadAll(response.Body)
	if err != nil {
		return 0, "", fmt.Errorf("failed to read registry %v response: %w", path, err)
	}
	return response.StatusCode, string(data), nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, files map[string]string) (*http.Request, error) {
	URL := c.baseURL + strings.TrimLeft(path, "/")
	if method == http.MethodGet {
		if c.apiKey != "" {
			URL += "?" + url.Values{APIKeyField: {c.apiKey}}.Encode()
		}
		return http.NewRequestWithContext(ctx, method, URL, nil)
	}
	payload := &bytes.Buffer{}
	writer := multipart.NewWriter(payload)
	if c.apiKey != "" {
		if err := writer.WriteField(APIKeyField, c.apiKey); err != nil {
			return nil, err
		}
	}
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		part, err := writer.CreateFormFile(name, name+".xml")
		if err != nil {
			return nil, err
		}
		if _, err = io.WriteString(part, files[name]); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	request, err := http.NewRequestWithContext(ctx, method, URL, payload)
	if err != nil {
		return nil, err
	}
	request.Header.Set("Content-Type", writer.FormDataContentType())
	return request, nil
}

// New creates a registry REST client, baseURL being the API root, e.g. https://www.openml.org/api/v1/xml/
func New(baseURL, apiKey string, options ...Option) *Client {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	ret := &Client{baseURL: baseURL, apiKey: apiKey}
	for _, opt := range options {
		opt(ret)
	}
	if ret.httpClient == nil {
		ret.httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return ret
}
