package dependencies

import (
	"strings"

	"github.com/viant/parsly"
)

// Requirement represents a single dependency pin, e.g. sklearn==1.3.0
type Requirement struct {
	Name     string
	Operator string
	Version  string
}

// String returns the pin in its textual form
func (r *Requirement) String() string {
	return r.Name + r.Operator + r.Version
}

// Requirements represents dependency pins in declaration order
type Requirements []*Requirement

// Lookup returns a requirement by name; names match case-insensitively with '-' and '_' treated alike
func (r Requirements) Lookup(name string) (*Requirement, bool) {
	key := normalize(name)
	for _, candidate := range r {
		if normalize(candidate.Name) == key {
			return candidate, true
		}
	}
	return nil, false
}

func normalize(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), "-", "_")
}

// Parse parses requirements separated by new lines or commas, each in the format: name[operator version][; marker]
func Parse(input []byte) (Requirements, error) {
	cursor := parsly.NewCursor("", input, 0)
	var ret Requirements
	for {
		matched := cursor.MatchAfterOptional(whitespaceToken, commaToken, markerToken, nameToken)
		switch matched.Code {
		case parsly.EOF:
			return ret, nil
		case commaCode, markerCode:
			continue
		case nameCode:
		default:
			return nil, cursor.NewError(nameToken)
		}
		requirement := &Requirement{Name: matched.Text(cursor)}
		ret = append(ret, requirement)

		matched = cursor.MatchAfterOptional(whitespaceToken, operatorTokens...)
		if matched.Code != operatorCode {
			continue
		}
		requirement.Operator = matched.Text(cursor)
		matched = cursor.MatchAfterOptional(whitespaceToken, versionToken)
		if matched.Code != versionCode {
			return nil, cursor.NewError(versionToken)
		}
		requirement.Version = matched.Text(cursor)
	}
}
