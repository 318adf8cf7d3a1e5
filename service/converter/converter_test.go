package converter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/omlflow/model/flow"
)

func TestCreateFromModel(t *testing.T) {
	description := "overridden"
	converted := func(model interface{}) (*flow.Flow, error) {
		return flow.New(model.(string), "1.0", flow.WithDescription("generated"), flow.WithModel(model))
	}

	testCases := []struct {
		description       string
		converter         Converter
		override          *string
		expectDescription string
		expectErr         error
	}{
		{
			description:       "converter description kept",
			converter:         Func(converted),
			expectDescription: "generated",
		},
		{
			description:       "description overridden",
			converter:         Func(converted),
			override:          &description,
			expectDescription: "overridden",
		},
		{
			description: "nil flow",
			converter:   Func(func(model interface{}) (*flow.Flow, error) { return nil, nil }),
			expectErr:   ErrInvalidConversion,
		},
		{
			description: "converter error",
			converter:   Func(func(model interface{}) (*flow.Flow, error) { return nil, flow.ErrNotSerializable }),
			expectErr:   flow.ErrNotSerializable,
		},
		{
			description: "nil converter",
			expectErr:   flow.ErrInvalidArgument,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			actual, err := CreateFromModel("model.Tree", tc.converter, tc.override)
			if tc.expectErr != nil {
				assert.True(t, errors.Is(err, tc.expectErr), err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expectDescription, actual.Description)
			assert.Equal(t, "model.Tree", actual.Model)
		})
	}
}
