package flow

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/omlflow/model/document"
	"github.com/viant/omlflow/model/flow"
)

// DefaultExtension is appended to flow URLs without one
const DefaultExtension = ".xml"

// Service reads and writes flow XML documents
type Service struct {
	fs     afs.Service
	indent int
}

// EncodeXML renders a flow into XML without the leading declaration line
func (s *Service) EncodeXML(aFlow *flow.Flow) (string, error) {
	data, err := s.encode(aFlow)
	if err != nil {
		return "", err
	}
	if index := bytes.IndexByte(data, '\n'); bytes.HasPrefix(data, []byte("<?xml")) && index != -1 {
		data = data[index+1:]
	}
	return string(data), nil
}

func (s *Service) encode(aFlow *flow.Flow) ([]byte, error) {
	doc, err := Encode(aFlow)
	if err != nil {
		return nil, err
	}
	return document.Marshal(doc, s.indent)
}

// DecodeXML parses flow XML
func (s *Service) DecodeXML(data []byte) (*flow.Flow, error) {
	doc, err := document.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return Decode(doc)
}

// Load loads a flow from the XML document at the specified URL
func (s *Service) Load(ctx context.Context, URL string) (*flow.Flow, error) {
	URL = withExtension(URL)
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load flow from %s: %w", URL, err)
	}
	ret, err := s.DecodeXML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode flow from %s: %w", URL, err)
	}
	return ret, nil
}

// Save stores a flow as an XML document, including the declaration, at the specified URL
func (s *Service) Save(ctx context.Context, URL string, aFlow *flow.Flow) error {
	URL = withExtension(URL)
	data, err := s.encode(aFlow)
	if err != nil {
		return fmt.Errorf("failed to encode flow for %s: %w", URL, err)
	}
	if err = s.fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save flow to %s: %w", URL, err)
	}
	return nil
}

func withExtension(URL string) string {
	if path.Ext(URL) == "" {
		return URL + DefaultExtension
	}
	return URL
}

// New creates a flow document service
func New(options ...Option) *Service {
	ret := &Service{indent: 2}
	for _, opt := range options {
		opt(ret)
	}
	if ret.fs == nil {
		ret.fs = afs.New()
	}
	return ret
}
