package api

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Descriptions(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{ErrInvalidURL, "Invalid URL"},
		{ErrInvalidResponse, "Invalid response"},
		{statusError(KindHTTPError, 418), "HTTP error: 418"},
		{ErrDecoding, "Failed to decode response"},
		{ErrEncoding, "Failed to encode request"},
		{ErrDownloadFailed, "Download failed"},
		{ErrUploadFailed, "Upload failed"},
		{ErrNoInternetConnection, "No internet connection"},
		{ErrTimeout, "Request timed out"},
		{newError(KindUnknown, errors.New("socket closed")), "socket closed"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Description())
	}
}

func TestError_MessageIncludesCause(t *testing.T) {
	err := newError(KindDecodingError, errors.New("unexpected EOF"))
	assert.Equal(t, "Failed to decode response: unexpected EOF", err.Error())

	unknown := newError(KindUnknown, errors.New("boom"))
	assert.Equal(t, "boom", unknown.Error())
}

func TestError_IsAndWrapping(t *testing.T) {
	cause := errors.New("dial tcp: i/o timeout")
	err := fmt.Errorf("refresh items: %w", newError(KindTimeout, cause))

	assert.ErrorIs(t, err, ErrTimeout)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrUnknown)
	assert.Equal(t, KindTimeout, KindOf(err))

	notFound := statusError(KindHTTPError, 404)
	assert.ErrorIs(t, notFound, ErrHTTP)
	assert.ErrorIs(t, notFound, &Error{Kind: KindHTTPError, StatusCode: 404})
	assert.NotErrorIs(t, notFound, &Error{Kind: KindHTTPError, StatusCode: 500})
	assert.Equal(t, 404, StatusCode(fmt.Errorf("wrap: %w", notFound)))

	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Zero(t, StatusCode(errors.New("plain")))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "timeout", KindTimeout.String())
	assert.Equal(t, "http_error", KindHTTPError.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
