package testutil

import "errors"

// ErrSimulated is returned by fakes standing in for a failing database.
var ErrSimulated = errors.New("simulated failure")
