package httputil

import "net/http"

// UserAgent is the single browser identity used for every request.
// The marketplace session is cookie-bound; rotating identities mid-session
// trips its device checks, so one stable UA is used everywhere.
const UserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// PageHeaders returns browser-like headers for fetching listing pages.
func PageHeaders() http.Header {
	h := http.Header{}
	h.Set("User-Agent", UserAgent)
	h.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
	h.Set("Accept-Language", "en-US,en;q=0.9,fr;q=0.8")
	h.Set("Accept-Encoding", "gzip, deflate, br")
	h.Set("Connection", "keep-alive")
	h.Set("Upgrade-Insecure-Requests", "1")
	h.Set("Sec-Fetch-Dest", "document")
	h.Set("Sec-Fetch-Mode", "navigate")
	h.Set("Sec-Fetch-Site", "none")
	h.Set("Sec-Fetch-User", "?1")
	return h
}

// APIHeaders returns headers for the marketplace's private JSON API.
// The csrf token and anon id are optional: a missing credential is sent
// as "no header", never treated as an error at this level.
func APIHeaders(csrfToken, anonID string) http.Header {
	h := http.Header{}
	h.Set("User-Agent", UserAgent)
	h.Set("Accept", "application/json")
	h.Set("Accept-Language", "en-US,en;q=0.9,fr;q=0.8")
	if csrfToken != "" {
		h.Set("X-Csrf-Token", csrfToken)
	}
	if anonID != "" {
		h.Set("X-Anon-Id", anonID)
	}
	return h
}
