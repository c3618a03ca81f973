package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrArtworkNotFound indicates the requested artwork does not exist
	ErrArtworkNotFound = errors.New("artwork not found")

	// ErrServerOffline indicates the collection API is unreachable
	ErrServerOffline = errors.New("collection API is unreachable")

	// ErrRateLimited indicates the API refused the request for exceeding its quota
	ErrRateLimited = errors.New("collection API rate limit exceeded")
)
