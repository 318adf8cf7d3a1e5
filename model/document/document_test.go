package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshal(t *testing.T) {
	testCases := []struct {
		description string
		input       string
		expectKeys  []string
		expectItems map[string]int
	}{
		{
			description: "single repeated element stays scalar",
			input: `<oml:flow xmlns:oml="http://openml.org/openml">
  <oml:name>a</oml:name>
  <oml:tag>x</oml:tag>
</oml:flow>`,
			expectKeys:  []string{"@xmlns:oml", "oml:name", "oml:tag"},
			expectItems: map[string]int{"oml:tag": 1, "oml:parameter": 0},
		},
		{
			description: "multiple repeated elements become a list",
			input: `<oml:flow xmlns:oml="http://openml.org/openml">
  <oml:name>a</oml:name>
  <oml:tag>x</oml:tag>
  <oml:tag>y</oml:tag>
  <oml:tag>z</oml:tag>
</oml:flow>`,
			expectKeys:  []string{"@xmlns:oml", "oml:name", "oml:tag"},
			expectItems: map[string]int{"oml:tag": 3},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			doc, err := Unmarshal([]byte(tc.input))
			require.NoError(t, err)
			root, ok := doc.Element("oml:flow")
			require.True(t, ok)
			assert.EqualValues(t, tc.expectKeys, root.Keys())
			for key, count := range tc.expectItems {
				assert.Len(t, root.Items(key), count, key)
			}
			name, ok, err := root.Text("oml:name")
			assert.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "a", name)
		})
	}
}

func TestUnmarshal_EmptyAndAttributes(t *testing.T) {
	doc, err := Unmarshal([]byte(`<root><empty/><typed unit="ms">12</typed></root>`))
	require.NoError(t, err)
	root, ok := doc.Element("root")
	require.True(t, ok)

	value, ok := root.Lookup("empty")
	assert.True(t, ok)
	assert.Nil(t, value)
	text, ok, err := root.Text("empty")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "", text)

	typed, ok := root.Element("typed")
	require.True(t, ok)
	unit, _, _ := typed.Text("@unit")
	assert.Equal(t, "ms", unit)
	text, _, err = root.Text("typed")
	assert.NoError(t, err)
	assert.Equal(t, "12", text)
}

func TestMarshal(t *testing.T) {
	param := NewElement().Put("oml:name", "b").Put("oml:default_value", "1")
	body := NewElement().
		Put("@xmlns:oml", "http://openml.org/openml").
		Put("oml:name", "flow").
		Put("oml:description", nil).
		Put("oml:parameter", []interface{}{param, NewElement().Put("oml:name", "a")}).
		Put("oml:tag", []interface{}{})
	doc := NewElement().Put("oml:flow", body)

	data, err := Marshal(doc, 2)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.HasPrefix(text, `<?xml version="1.0" encoding="utf-8"?>`))
	assert.Contains(t, text, `<oml:flow xmlns:oml="http://openml.org/openml">`)
	assert.Contains(t, text, `<oml:description/>`)
	assert.NotContains(t, text, `oml:tag`)
	assert.Less(t, strings.Index(text, "<oml:name>b</oml:name>"), strings.Index(text, "<oml:name>a</oml:name>"))

	decoded, err := Unmarshal(data)
	require.NoError(t, err)
	root, _ := decoded.Element("oml:flow")
	assert.Len(t, root.Items("oml:parameter"), 2)
}

func TestMarshal_Invalid(t *testing.T) {
	_, err := Marshal(NewElement(), 0)
	assert.Error(t, err)

	_, err = Marshal(NewElement().Put("root", NewElement().Put("x", 12)), 0)
	assert.Error(t, err)
}

func TestAsList(t *testing.T) {
	assert.Len(t, AsList(nil), 0)
	assert.Len(t, AsList("x"), 1)
	assert.Len(t, AsList(NewElement()), 1)
	assert.Len(t, AsList([]interface{}{"a", "b"}), 2)
	assert.Len(t, AsList([]string{"a", "b", "c"}), 3)
}

func TestElement_Append(t *testing.T) {
	e := NewElement()
	e.Append("k", "a")
	value, _ := e.Lookup("k")
	assert.Equal(t, "a", value)
	e.Append("k", "b").Append("k", nil)
	assert.EqualValues(t, []interface{}{"a", "b", nil}, e.Items("k"))
}
