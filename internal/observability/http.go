package observability

import (
	"net"
	"net/http"
	"strconv"
	"strings"
)

const (
	RequestIDHeader    = "X-Request-Id"
	maxRequestIDLength = 64
)

// RequestIDFromRequest returns the caller's request id, or "" when it is
// missing or not a short token of letters, digits, '-', '_' or '.'.
func RequestIDFromRequest(r *http.Request) string {
	id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
	if id == "" || len(id) > maxRequestIDLength {
		return ""
	}
	for _, ch := range id {
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9':
		case ch == '-', ch == '_', ch == '.':
		default:
			return ""
		}
	}
	return id
}

// IPFromRequest prefers the first X-Forwarded-For hop over RemoteAddr.
func IPFromRequest(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}

// ClientKey identifies the caller for throttling: the account when one is
// known, the client IP otherwise.
func ClientKey(r *http.Request, accountID int) string {
	if accountID > 0 {
		return "user:" + strconv.Itoa(accountID)
	}
	return "ip:" + IPFromRequest(r)
}
