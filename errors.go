package nsduck

import "github.com/nsqlite/nsduck/binding"

// Errors returned by Session operations. They are the binding sentinels, so
// errors.Is works across both packages.
var (
	ErrOpen          = binding.ErrOpen
	ErrConnect       = binding.ErrConnect
	ErrQuery         = binding.ErrQuery
	ErrInvalidHandle = binding.ErrInvalidHandle
	ErrNotConnected  = binding.ErrNotConnected
	ErrAlreadyClosed = binding.ErrAlreadyClosed
	ErrClose         = binding.ErrClose
	ErrDisconnect    = binding.ErrDisconnect
)

// QueryError carries the engine diagnostic of a failed statement.
type QueryError = binding.QueryError
