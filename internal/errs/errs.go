package errs

import "errors"

var ErrAdminNotFound = errors.New("admin not found")
var ErrInvalidToken = errors.New("invalid token")
var ErrLoginAlreadyExists = errors.New("login already exists")

var ErrOrderNotFound = errors.New("order not found")
var ErrUnknownStatus = errors.New("unknown order status")
var ErrUnknownCallStatus = errors.New("unknown call status")
var ErrUnknownShippingMethod = errors.New("unknown shipping method")

var ErrUnexpectedStatus = errors.New("unexpected status code")
var ErrNonJSONResponse = errors.New("non-json response")
var ErrRejected = errors.New("rejected by order api")

var ErrPhoneTooShort = errors.New("phone number too short")
var ErrNotConfigured = errors.New("not configured")

var ErrMigrationNotFound = errors.New("migration not found")
var ErrMigrationState = errors.New("migration is not awaiting confirmation")
var ErrMigrationInFlight = errors.New("migration already in progress")
