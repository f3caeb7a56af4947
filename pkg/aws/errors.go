package aws

import (
	"errors"

	"github.com/aws/smithy-go"
)

// APIErrorCode returns the AWS error code carried by err, or "" when err is not an API error.
func APIErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}
