package source

import "errors"

var UnsupportedSourceError = errors.New("Data Source does not support this query")

// Provider failures are reported as one of these two, wrapped with the
// underlying cause. Callers classify with errors.Is.
var (
	ErrNetwork     = errors.New("provider request failed")
	ErrEmptyResult = errors.New("provider returned no result")
)
