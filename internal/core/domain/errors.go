package domain

import "errors"

// Domain Errors
var (
	ErrInvalidSnapshot   = errors.New("invalid stats snapshot")
	ErrInvalidImport     = errors.New("invalid settings file")
	ErrUnknownPanel      = errors.New("unknown settings panel")
	ErrInvalidField      = errors.New("invalid form field")
	ErrSettingsNotLoaded = errors.New("settings have not been loaded")
	ErrNoDashboard       = errors.New("dashboard has not been rendered yet")
	ErrUpstream          = errors.New("bot request failed")
)
