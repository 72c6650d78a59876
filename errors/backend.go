package errors

const (
	BackendRequestFailedErrorCode = 300_001
	BackendResponseInvalidCode    = 300_002
	IDMaskRequiredErrorCode       = 300_003
	IDMaskActionInvalidErrorCode  = 300_004
	IDMaskTokenNotFoundErrorCode  = 300_005
	IDMaskFailedErrorCode         = 300_006
)

// BackendRequestFailedError indicates the Peponi API could not be reached or answered with a non-2xx status
var BackendRequestFailedError = new(BackendRequestFailedErrorCode, "BackendRequestFailed", "%s %s failed: %s")

// BackendResponseInvalidError indicates the Peponi API answered with a body that does not match the endpoint shape
var BackendResponseInvalidError = new(BackendResponseInvalidCode, "BackendResponseInvalid", "response of %s is invalid: %s")

var IDMaskRequiredError = new(IDMaskRequiredErrorCode, "IDMaskRequired", "ID and action are required")

var IDMaskActionInvalidError = new(IDMaskActionInvalidErrorCode, "IDMaskActionInvalid", `Invalid action. Use "mask" or "unmask".`)

var IDMaskTokenNotFoundError = new(IDMaskTokenNotFoundErrorCode, "IDMaskTokenNotFound", "Masked ID %s is unknown or expired")

var IDMaskFailedError = new(IDMaskFailedErrorCode, "IDMaskFailed", "Something went wrong: %v")
