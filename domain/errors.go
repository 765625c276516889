package domain

import "errors"

var (
	// ErrAnalysisNotFound is returned when no completed skin analysis exists for the user
	ErrAnalysisNotFound = errors.New("skin analysis not found")

	// ErrProfileNotFound is returned when the user has no onboarding profile
	ErrProfileNotFound = errors.New("onboarding profile not found")

	// ErrProductNotFound is returned when a catalog row cannot be found
	ErrProductNotFound = errors.New("product not found")

	// ErrRateLimited is returned when the LLM provider answers 429
	ErrRateLimited = errors.New("llm provider rate limited")

	// ErrUpstreamUnavailable is returned when the LLM provider answers 5xx
	ErrUpstreamUnavailable = errors.New("llm provider unavailable")

	// ErrMalformedCompletion is returned when the completion is not valid JSON
	// or does not satisfy the expected schema; never retried
	ErrMalformedCompletion = errors.New("malformed llm completion")

	// ErrEmptyCompletion is returned when the provider answers with no content
	ErrEmptyCompletion = errors.New("empty llm completion")

	// ErrCacheMiss is returned when a result is not present in the cache
	ErrCacheMiss = errors.New("cache miss")
)
