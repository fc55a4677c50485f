package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
)

// Kind classifies a client failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidURL
	KindInvalidResponse
	KindHTTPError
	KindDecodingError
	KindEncodingError
	KindDownloadFailed
	KindUploadFailed
	KindNoInternetConnection
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindInvalidURL:
		return "invalid_url"
	case KindInvalidResponse:
		return "invalid_response"
	case KindHTTPError:
		return "http_error"
	case KindDecodingError:
		return "decoding_error"
	case KindEncodingError:
		return "encoding_error"
	case KindDownloadFailed:
		return "download_failed"
	case KindUploadFailed:
		return "upload_failed"
	case KindNoInternetConnection:
		return "no_internet_connection"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by every Client operation.
type Error struct {
	Kind       Kind
	StatusCode int // set for status-derived failures
	Cause      error
}

// Sentinels for errors.Is. An HTTP sentinel without a status code matches any status.
var (
	ErrInvalidURL           = &Error{Kind: KindInvalidURL}
	ErrInvalidResponse      = &Error{Kind: KindInvalidResponse}
	ErrHTTP                 = &Error{Kind: KindHTTPError}
	ErrDecoding             = &Error{Kind: KindDecodingError}
	ErrEncoding             = &Error{Kind: KindEncodingError}
	ErrDownloadFailed       = &Error{Kind: KindDownloadFailed}
	ErrUploadFailed         = &Error{Kind: KindUploadFailed}
	ErrNoInternetConnection = &Error{Kind: KindNoInternetConnection}
	ErrTimeout              = &Error{Kind: KindTimeout}
	ErrUnknown              = &Error{Kind: KindUnknown}
)

// Description returns the user-facing message for the error.
func (e *Error) Description() string {
	switch e.Kind {
	case KindInvalidURL:
		return "Invalid URL"
	case KindInvalidResponse:
		return "Invalid response"
	case KindHTTPError:
		return fmt.Sprintf("HTTP error: %d", e.StatusCode)
	case KindDecodingError:
		return "Failed to decode response"
	case KindEncodingError:
		return "Failed to encode request"
	case KindDownloadFailed:
		return "Download failed"
	case KindUploadFailed:
		return "Upload failed"
	case KindNoInternetConnection:
		return "No internet connection"
	case KindTimeout:
		return "Request timed out"
	default:
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return "Unknown error"
	}
}

func (e *Error) Error() string {
	if e.Cause != nil && e.Kind != KindUnknown {
		return fmt.Sprintf("%s: %v", e.Description(), e.Cause)
	}
	return e.Description()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error of the same kind. A zero StatusCode on the target
// matches any status.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.StatusCode == 0 || t.StatusCode == e.StatusCode
}

// KindOf reports the taxonomy member of err, or KindUnknown if err did not
// come from this package.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

// StatusCode returns the HTTP status carried by err, or zero.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

func newError(kind Kind, cause error) *Error {
	return &Error{Kind: kind, Cause: cause}
}

func statusError(kind Kind, code int) *Error {
	return &Error{Kind: kind, StatusCode: code}
}

// classifyTransport maps an error from http.Client.Do onto the taxonomy.
func classifyTransport(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return newError(KindTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return newError(KindTimeout, err)
	}
	if isOffline(err) {
		return newError(KindNoInternetConnection, err)
	}
	if strings.Contains(err.Error(), "malformed HTTP") {
		return newError(KindInvalidResponse, err)
	}
	return newError(KindUnknown, err)
}

func isOffline(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	return errors.Is(err, syscall.ENETUNREACH) ||
		errors.Is(err, syscall.EHOSTUNREACH) ||
		errors.Is(err, syscall.ENETDOWN)
}
