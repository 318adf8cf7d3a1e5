package meta

import (
	"os"
	"regexp"
)

// envExpr matches ${env.KEY}; KEY consists of letters, digits and '_' and may be empty
var envExpr = regexp.MustCompile(`\$\{env\.([A-Za-z0-9_]*)\}`)

// ExpandEnv replaces ${env.KEY} expressions with the value of environment variable KEY, or "" if unset
func ExpandEnv(value string) string {
	return envExpr.ReplaceAllStringFunc(value, func(expr string) string {
		return os.Getenv(envExpr.FindStringSubmatch(expr)[1])
	})
}
