package apperrors

import "errors"

var (
	// ErrReasonerRequired is returned when the schema mapper is constructed
	// without a reasoning backend. Mapping cannot silently degrade to "no
	// mappings found".
	ErrReasonerRequired = errors.New("reasoning backend is required for schema mapping")

	// ErrMappingUnavailable wraps upstream reasoning-service failures. It is
	// semantically distinct from a successful call that found zero confident
	// mappings.
	ErrMappingUnavailable = errors.New("schema mapping unavailable")

	// ErrMalformedMapping is returned when the reasoning service responds
	// with output that cannot be parsed as a mapping suggestion array.
	ErrMalformedMapping = errors.New("malformed mapping response")

	// ErrProbabilisticUnavailable is returned when probabilistic resolution
	// is requested but no match model is configured. The deterministic
	// linker remains usable standalone.
	ErrProbabilisticUnavailable = errors.New("probabilistic resolution unavailable: no match model configured")
)
