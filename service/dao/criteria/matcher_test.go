package criteria

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/omlflow/service/dao"
)

func TestMatch(t *testing.T) {
	fields := map[string]string{"name": "sklearn.svm.SVC", "external_version": "sklearn==1.3.0"}
	testCases := []struct {
		description string
		parameters  []*dao.Parameter
		expect      bool
	}{
		{description: "no parameters", expect: true},
		{description: "single value", parameters: []*dao.Parameter{dao.NewParameter("name", "sklearn.svm.SVC")}, expect: true},
		{description: "any of values", parameters: []*dao.Parameter{dao.NewParameter("external_version", "1.0", "sklearn==1.3.0")}, expect: true},
		{description: "all parameters", parameters: []*dao.Parameter{dao.NewParameter("name", "sklearn.svm.SVC"), dao.NewParameter("external_version", "1.0")}, expect: false},
		{description: "unknown field", parameters: []*dao.Parameter{dao.NewParameter("uploader", "1")}, expect: false},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.expect, Match(fields, tc.parameters))
		})
	}
}
