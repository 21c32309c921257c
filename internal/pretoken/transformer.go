package pretoken

import (
	"go.uber.org/zap"
)

// Event keys of the Cognito Pre Token Generation V2_0 payload
const (
	keyRequest               = "request"
	keyUserAttributes        = "userAttributes"
	keyResponse              = "response"
	keyClaimsOverrideDetails = "claimsAndScopeOverrideDetails"
	keyAccessTokenGeneration = "accessTokenGeneration"
	keyClaimsToAddOrOverride = "claimsToAddOrOverride"
)

// User attributes read from the event and the claims written to the access token
const (
	AttrAadGroups  = "custom:AadGroups"
	AttrEmail      = "email"
	ClaimAadGroups = "aad:groups"
	ClaimCustomAad = "custom:AadGroups"
	ClaimEmail     = "email"
	FailureMessage = "Failed to extract attributes from Cognito event"
)

// Result is the outcome of a single transformation. Event is always the input
// map, mutated when Applied is true. Err carries the diagnostic of a
// suppressed failure and is left to the caller to surface.
type Result struct {
	Event   map[string]any
	Applied bool
	Err     error
}

// Transformer injects AAD group and email claims into the access token
// override section of a pre token generation event.
type Transformer struct {
	logger *zap.Logger
}

// NewTransformer returns a Transformer logging through logger. A nil logger
// discards all output.
func NewTransformer(logger *zap.Logger) *Transformer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Transformer{logger: logger}
}

// Transform rewrites response.claimsAndScopeOverrideDetails when the event
// already carries that key. Any failure is logged and reported in the Result
// rather than returned.
func (t *Transformer) Transform(event map[string]any) Result {
	applied, err := t.apply(event)
	if err != nil {
		t.logger.Error(FailureMessage, zap.Error(err))
	}
	return Result{Event: event, Applied: applied, Err: err}
}

func (t *Transformer) apply(event map[string]any) (bool, error) {
	attrs, err := userAttributes(event)
	if err != nil {
		return false, err
	}
	aadGroups := attrs[AttrAadGroups]
	email := attrs[AttrEmail]

	rawResponse, ok := event[keyResponse]
	if !ok {
		return false, nil
	}
	response, ok := rawResponse.(map[string]any)
	if !ok {
		return false, extractionError("read response", ErrMalformedResponse)
	}
	if _, ok := response[keyClaimsOverrideDetails]; !ok {
		return false, nil
	}

	response[keyClaimsOverrideDetails] = map[string]any{
		keyAccessTokenGeneration: map[string]any{
			keyClaimsToAddOrOverride: ClaimSet(aadGroups, email),
		},
	}
	return true, nil
}

// ClaimSet builds the claims added to the access token. Missing attributes
// are carried as nil.
func ClaimSet(aadGroups, email any) map[string]any {
	return map[string]any{
		ClaimAadGroups: aadGroups,
		ClaimCustomAad: aadGroups,
		ClaimEmail:     email,
	}
}

func userAttributes(event map[string]any) (map[string]any, error) {
	rawRequest, ok := event[keyRequest]
	if !ok {
		return nil, extractionError("read request", ErrMissingRequest)
	}
	request, ok := rawRequest.(map[string]any)
	if !ok {
		return nil, extractionError("read request", ErrMalformedRequest)
	}
	rawAttrs, ok := request[keyUserAttributes]
	if !ok {
		return nil, extractionError("read userAttributes", ErrMissingUserAttributes)
	}
	attrs, ok := rawAttrs.(map[string]any)
	if !ok {
		return nil, extractionError("read userAttributes", ErrMalformedUserAttributes)
	}
	return attrs, nil
}
