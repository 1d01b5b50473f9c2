package summary

import "errors"

// ErrSummarize marks completion-service failures: unreachable endpoint,
// non-2xx status, or an undecodable response envelope.
var ErrSummarize = errors.New("summarization failed")
