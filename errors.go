package vestaboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

var (
	// ErrCredentialsNotFound indicates no saved credentials exist for the requested mode.
	ErrCredentialsNotFound = errors.New("vestaboard: credentials not found")
	// ErrAPIKeyMissing indicates the API key is required.
	ErrAPIKeyMissing = errors.New("vestaboard: API key is required")
	// ErrAPISecretMissing indicates the API secret is required.
	ErrAPISecretMissing = errors.New("vestaboard: API secret is required")
	// ErrSubscriptionMissing indicates the subscription ID is required.
	ErrSubscriptionMissing = errors.New("vestaboard: subscription ID is required")
	// ErrLocalIPMissing indicates the board IP address is required for the local API.
	ErrLocalIPMissing = errors.New("vestaboard: board IP address is required")
	// ErrRowsMissing indicates a raw request carries no rows.
	ErrRowsMissing = errors.New("vestaboard: rows are required")
)

// UnsupportedCharacterError reports a glyph that has no code on the board.
// Index is the cell position within the formatted line, or -1 for a single glyph lookup.
type UnsupportedCharacterError struct {
	Glyph string
	Index int
}

func (e *UnsupportedCharacterError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("vestaboard: unsupported character %q", e.Glyph)
	}
	return fmt.Sprintf("vestaboard: unsupported character %q at index %d", e.Glyph, e.Index)
}

// InvalidCodeError reports a code that does not map to a glyph.
type InvalidCodeError struct {
	Code Code
}

func (e *InvalidCodeError) Error() string {
	return fmt.Sprintf("vestaboard: invalid character code %d (valid range 0-%d)", int(e.Code), int(MaxCode))
}

// MalformedRowError reports a pre-encoded row that is not a list of exactly 22 integers.
// Col is -1 when the problem concerns the row as a whole.
type MalformedRowError struct {
	Row    int
	Length int
	Col    int
	Reason string
}

func (e *MalformedRowError) Error() string {
	b := strings.Builder{}
	b.WriteString("vestaboard: malformed row ")
	b.WriteString(strconv.Itoa(e.Row))
	if e.Col >= 0 {
		b.WriteString(" col ")
		b.WriteString(strconv.Itoa(e.Col))
	}
	b.WriteString(": ")
	if e.Reason != "" {
		b.WriteString(e.Reason)
	} else {
		fmt.Fprintf(&b, "length %d, want %d", e.Length, Cols)
	}
	return b.String()
}

// GridShapeError reports a grid that violates the 6x22 shape or the code range.
// Row and Col are -1 when they do not apply.
type GridShapeError struct {
	Rows   int
	Row    int
	Length int
	Col    int
	Code   int
}

func (e *GridShapeError) Error() string {
	switch {
	case e.Row < 0:
		return fmt.Sprintf("vestaboard: grid has %d rows, want %d", e.Rows, Rows)
	case e.Col < 0:
		return fmt.Sprintf("vestaboard: grid row %d has %d codes, want %d", e.Row, e.Length, Cols)
	default:
		return fmt.Sprintf("vestaboard: grid row %d col %d has code %d outside 0-%d", e.Row, e.Col, e.Code, int(MaxCode))
	}
}

// APIError is a rejected post. The cloud API answers with a small JSON body
// such as {"error":"..."} or {"message":"...","code":...}; the local API
// usually answers with plain text.
type APIError struct {
	StatusCode int
	// Code is the service's error code, if the body carried one.
	Code string
	// Message is the service's explanation, or the trimmed body when it is not JSON.
	Message string
	// RequestID is the X-Request-Id sent with the failed post.
	RequestID string
	// RawBody keeps the response bytes for troubleshooting.
	RawBody []byte
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("vestaboard: board rejected message (%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	if e.Code != "" {
		msg += ", code " + e.Code
	}
	msg += ")"
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.RequestID != "" {
		msg += " [request " + e.RequestID + "]"
	}
	return msg
}

// IsRateLimitError reports whether err is an *APIError for posting faster
// than the board accepts (HTTP 429).
func IsRateLimitError(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.StatusCode == http.StatusTooManyRequests
}

// IsAuthError reports whether err is an *APIError for a rejected key, secret
// or local token (HTTP 401 or 403).
func IsAuthError(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && (ae.StatusCode == http.StatusUnauthorized || ae.StatusCode == http.StatusForbidden)
}

// errorBody is the JSON error shape returned by the cloud API.
type errorBody struct {
	Error   string          `json:"error"`
	Message string          `json:"message"`
	Code    json.RawMessage `json:"code"`
}

func buildAPIError(status int, requestID string, body []byte) *APIError {
	ae := &APIError{
		StatusCode: status,
		Message:    strings.TrimSpace(string(body)),
		RequestID:  requestID,
		RawBody:    body,
	}
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return ae
	}
	switch {
	case eb.Message != "":
		ae.Message = eb.Message
	case eb.Error != "":
		ae.Message = eb.Error
	}
	if code := strings.Trim(string(eb.Code), `" `); code != "null" {
		ae.Code = code
	}
	return ae
}
