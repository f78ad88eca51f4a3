package service

import "errors"

// The login sequence and the tenant router surface failures from this closed
// set. Credential failures stay distinguishable here for audit logging even
// where the user-facing text collapses them.
var (
	// License errors
	ErrLicenseNotFound         = errors.New("license not found")
	ErrLicenseInactive         = errors.New("license is not active")
	ErrLicenseSuspended        = errors.New("license is suspended")
	ErrLicenseExpired          = errors.New("license has expired")
	ErrLicenseExists           = errors.New("license already exists")
	ErrLicenseRekeyUnsupported = errors.New("license keys cannot be changed")

	// Provisioning errors
	ErrProvisioningFailed = errors.New("tenant store could not be provisioned")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is not active")
	ErrMaxUsersReached    = errors.New("license user limit reached")

	// Session errors
	ErrSessionIntegrity = errors.New("session has no valid tenant binding")
)
