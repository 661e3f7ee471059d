package store

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCreateFailed reports a create that unexpectedly yielded no row. Only
// creations raise this; updates and deletes report absence through their
// return values instead.
var ErrCreateFailed = errors.New("store: create returned no record")

// ConfigError reports missing connection settings. It names every missing
// value so a misconfigured deployment fails loudly once, not piecemeal.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("store: missing configuration: %s", strings.Join(e.Missing, ", "))
}

// QueryError reports a failure from the query engine: either a non-OK status
// in a response envelope or a transport-level error. It is never used for
// "record not found".
type QueryError struct {
	Detail string // engine detail message, or a dump of the raw response
	Cause  error  // underlying transport error, if any
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("store: query failed: %s", e.Detail)
}

func (e *QueryError) Unwrap() error { return e.Cause }
