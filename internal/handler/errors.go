package handler

import "errors"

var errNoHandlersAreCreated = errors.New("no transport handlers were created: no listen address configured")
