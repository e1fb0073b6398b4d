package constants

import "errors"

// Configuration errors.
var (
	ErrNoSubdomain        = errors.New("no subdomain configured, use 'qtest login --subdomain <name>' or set QTEST_SUBDOMAIN")
	ErrNotAuthenticated   = errors.New("not authenticated, use 'qtest login' first")
	ErrUnknownConfigKey   = errors.New("unknown configuration key")
	ErrPasswordRequired   = errors.New("password is required")
	ErrUsernameRequired   = errors.New("username is required")
	ErrInvalidOutputFmt   = errors.New("invalid output format, use table, json or yaml")
	ErrProjectRequired    = errors.New("--project flag is required")
	ErrInvalidID          = errors.New("invalid ID, expected a positive integer")
	ErrInvalidParentType  = errors.New("invalid --parent-type, use root, release or test-cycle")
	ErrResourceNotDeleted = errors.New("resource was not deleted")
)
