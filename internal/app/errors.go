package app

import "errors"

// ErrNotInitialized is returned by commands that run without an App in context
var ErrNotInitialized = errors.New("app not initialized")
