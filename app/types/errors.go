package types

import "errors"

var (
	// ErrMalformedStartLine means the request line had fewer than two tokens.
	ErrMalformedStartLine = errors.New("malformed start line")
	// ErrTruncatedBody means the peer closed before Content-Length bytes arrived.
	ErrTruncatedBody = errors.New("truncated body")
	ErrMissingHeader = errors.New("missing header")
	ErrFilesystem    = errors.New("filesystem failure")
)
