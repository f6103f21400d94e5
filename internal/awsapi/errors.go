package awsapi

import (
	"errors"

	"github.com/aws/smithy-go"
)

// APIFault is a structured provider error: the request reached the provider
// and was rejected with a code the caller may grade as a domain diagnostic.
// Transport failures are never represented as an APIFault.
type APIFault struct {
	Code    string
	Message string
}

func (f *APIFault) Error() string {
	return f.Code + ": " + f.Message
}

// AsFault extracts an APIFault from an error chain.
func AsFault(err error) (*APIFault, bool) {
	var fault *APIFault
	if errors.As(err, &fault) {
		return fault, true
	}
	return nil, false
}

// dryRunSuccessCode is how EC2 signals that a dry-run request would have
// succeeded. It arrives as an error code but is not an error.
const dryRunSuccessCode = "DryRunOperation"

var throttlingCodes = map[string]struct{}{
	"Throttling":               {},
	"ThrottlingException":      {},
	"RequestLimitExceeded":     {},
	"TooManyRequestsException": {},
}

// isThrottling reports whether the error is a provider rate-limit rejection.
func isThrottling(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	_, ok := throttlingCodes[apiErr.ErrorCode()]
	return ok
}

// splitOutcome converts a raw SDK error into the tri-state outcome contract.
// A nil error stays a success; a structured provider rejection becomes an
// APIFault; anything else (connection reset, malformed response) is returned
// as-is so the caller aborts instead of grading it. A rate-limit rejection
// that survives the retry budget also stays an error: the request never went
// through, so it says nothing about the configuration.
func splitOutcome(err error) (*APIFault, error) {
	if err == nil {
		return nil, nil
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && !isThrottling(err) {
		return &APIFault{Code: apiErr.ErrorCode(), Message: apiErr.ErrorMessage()}, nil
	}
	return nil, err
}
