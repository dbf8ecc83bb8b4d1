package record

import "regexp"

var tokenRe = regexp.MustCompile(`\{([^{}]+)\}`)

// Substitute replaces every {FieldName} token in template with the
// stringified value of that field. Tokens naming a field the record does
// not have are left verbatim, so an operator can see the typo in the
// delivered message instead of a silent blank.
func Substitute(template string, fields Fields) string {
	return tokenRe.ReplaceAllStringFunc(template, func(token string) string {
		name := token[1 : len(token)-1]
		value := fields.Get(name)
		if value.Absent() {
			return token
		}
		return value.String()
	})
}
