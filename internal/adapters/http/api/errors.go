package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrUploadLost   = errors.New("uploaded files not found; please upload again")
	ErrUpstream     = errors.New("summarization backend failed")
	ErrMethod       = errors.New("method not allowed")
	ErrUploadTooBig = errors.New("upload exceeds size limit")
)
