package entity

import "errors"

var (
	// ErrNotConnected means the user has no stored calendar credential and
	// must (re)authorize before exporting.
	ErrNotConnected = errors.New("google calendar not connected, please connect your account first")

	// ErrRefreshFailed means the provider rejected the refresh grant. The user
	// has to reconnect; the refresh is never retried.
	ErrRefreshFailed = errors.New("failed to refresh google token, please reconnect your account")

	// ErrProviderRequestFailed marks a non-success response from a create
	// event/task call. It is scoped to a single exported item.
	ErrProviderRequestFailed = errors.New("provider request failed")

	// ErrValidation marks malformed input rejected before any network or
	// persistence call.
	ErrValidation = errors.New("validation failed")

	ErrNotFound = errors.New("not found")

	ErrOAuthDenied   = errors.New("authorization denied by provider")
	ErrInvalidState  = errors.New("invalid or expired oauth state")
	ErrTokenExchange = errors.New("authorization code exchange failed")

	ErrPlannerResponse = errors.New("planner returned an invalid plan")
)
