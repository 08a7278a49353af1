package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrNoListings is returned when the shopping source yields no results
	ErrNoListings = errors.New("no shopping results found")

	// ErrSearchAPIFailure is returned when the shopping search API request fails
	ErrSearchAPIFailure = errors.New("shopping search API request failed")

	// ErrOracleFailure is returned when an AI oracle reply cannot be used
	ErrOracleFailure = errors.New("AI oracle request failed")

	// ErrNotFashion is returned when the uploaded image contains no fashion items
	ErrNotFashion = errors.New("image does not contain fashion items")

	// ErrImageTooLarge is returned when the uploaded image exceeds the size cap
	ErrImageTooLarge = errors.New("uploaded image exceeds size limit")

	// ErrUnsupportedImage is returned for image types the oracle cannot consume
	ErrUnsupportedImage = errors.New("unsupported image type")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
