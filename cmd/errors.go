package cmd

import (
	"github.com/pkg/errors"
)

// errNoMatch ends a search that printed nothing. It sets a failing exit
// status without an error message.
var errNoMatch = errors.New("no match")

type usageError struct {
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

type configError struct {
	msg string
}

func (e *configError) Error() string {
	return e.msg
}
