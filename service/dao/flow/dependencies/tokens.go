package dependencies

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

// Token codes start at 1 to avoid clash with parsly.EOF
const (
	whitespaceCode = iota + 1
	commaCode
	nameCode
	operatorCode
	versionCode
	markerCode
)

var (
	whitespaceToken = parsly.NewToken(whitespaceCode, "Whitespace", matcher.NewWhiteSpace())
	commaToken      = parsly.NewToken(commaCode, ",", matcher.NewByte(','))
	nameToken       = parsly.NewToken(nameCode, "Name", &nameMatcher{})
	versionToken    = parsly.NewToken(versionCode, "Version", &versionMatcher{})
	markerToken     = parsly.NewToken(markerCode, "Marker", &markerMatcher{})

	// operatorTokens are ordered so that two character operators win over their prefixes
	operatorTokens = []*parsly.Token{
		parsly.NewToken(operatorCode, "==", matcher.NewFragment("==")),
		parsly.NewToken(operatorCode, ">=", matcher.NewFragment(">=")),
		parsly.NewToken(operatorCode, "<=", matcher.NewFragment("<=")),
		parsly.NewToken(operatorCode, "!=", matcher.NewFragment("!=")),
		parsly.NewToken(operatorCode, "~=", matcher.NewFragment("~=")),
		parsly.NewToken(operatorCode, ">", matcher.NewByte('>')),
		parsly.NewToken(operatorCode, "<", matcher.NewByte('<')),
	}
)

// nameMatcher matches a distribution name, e.g. scikit-learn or zope.interface
type nameMatcher struct{}

func (m *nameMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	size := cursor.InputSize
	if pos >= size || !(isLetter(input[pos]) || isDigit(input[pos])) {
		return 0
	}
	matched := 1
	for i := pos + 1; i < size; i++ {
		c := input[i]
		if isLetter(c) || isDigit(c) || c == '_' || c == '-' || c == '.' {
			matched++
			continue
		}
		break
	}
	return matched
}

// versionMatcher matches everything up to a separator or an environment marker
type versionMatcher struct{}

func (m *versionMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	matched := 0
	for i := cursor.Pos; i < cursor.InputSize; i++ {
		switch input[i] {
		case ' ', '\t', '\r', '\n', ',', ';':
			return matched
		}
		matched++
	}
	return matched
}

// markerMatcher matches an environment marker, e.g. "; python_version < '3.8'", up to the end of line
type markerMatcher struct{}

func (m *markerMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	if pos >= cursor.InputSize || input[pos] != ';' {
		return 0
	}
	matched := 1
	for i := pos + 1; i < cursor.InputSize && input[i] != '\n'; i++ {
		matched++
	}
	return matched
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
