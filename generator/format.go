package generator

import (
	"strconv"
	"strings"

	"github.com/kbukum/healthreg/healthcheck"
)

// PortPlaceholder is replaced with the deployment's service port in HTTP
// check URLs.
const PortPlaceholder = "${PORT}"

// FormatHTTP substitutes every port placeholder in url. A url without the
// placeholder, or a port that is not positive, leaves url unchanged.
func FormatHTTP(url string, port int) string {
	if port <= 0 || !strings.Contains(url, PortPlaceholder) {
		return url
	}
	return strings.ReplaceAll(url, PortPlaceholder, strconv.Itoa(port))
}

// Format returns a copy of decl with its http field templated. A declaration
// without an http field is returned as is.
func Format(decl healthcheck.Declaration, port int) healthcheck.Declaration {
	url, ok := decl.Fields[healthcheck.FieldHTTP].(string)
	if !ok {
		return decl
	}
	return decl.With(healthcheck.FieldHTTP, FormatHTTP(url, port))
}
