package extract

import "regexp"

// The token sits in a JSON blob inlined into one of the page's script tags.
// Depending on how the page serialized it the quotes may be escaped, so the
// escaped variant is tried first, then the plain one.
var (
	csrfEscapedRe = regexp.MustCompile(`\\"CSRF_TOKEN\\":\\"([a-f0-9-]+)\\"`)
	csrfPlainRe   = regexp.MustCompile(`"CSRF_TOKEN":"([a-f0-9-]+)"`)
)

// CSRFTokenFromScripts scans script contents for the embedded CSRF token.
// Returns "" when no script carries one; a missing token is not an error,
// requests are then sent without the header.
func CSRFTokenFromScripts(scripts []string) string {
	for _, content := range scripts {
		if m := csrfEscapedRe.FindStringSubmatch(content); m != nil {
			return m[1]
		}
		if m := csrfPlainRe.FindStringSubmatch(content); m != nil {
			return m[1]
		}
	}
	return ""
}

// CSRFTokenFromHTML extracts script contents from a full page and scans them.
func CSRFTokenFromHTML(htmlContent string) string {
	return CSRFTokenFromScripts(scriptContents(htmlContent))
}
