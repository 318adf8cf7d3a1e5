package flow

import (
	"github.com/pmezard/go-difflib/difflib"
	"github.com/viant/omlflow/model/flow"
)

// Diff returns a unified diff of both flows XML renderings, empty when the renderings match
func (s *Service) Diff(expected, actual *flow.Flow) (string, error) {
	expectedXML, err := s.EncodeXML(expected)
	if err != nil {
		return "", err
	}
	actualXML, err := s.EncodeXML(actual)
	if err != nil {
		return "", err
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expectedXML),
		B:        difflib.SplitLines(actualXML),
		FromFile: expected.GetName(),
		ToFile:   actual.GetName(),
		Context:  2,
	})
}
