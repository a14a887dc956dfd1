package ftp

import (
	"fmt"

	"github.com/pkg/errors"
)

// ConnectionError indicates that the control connection to the ftp server
// could not be established at all.
//
type ConnectionError struct {
	Host string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed connecting to %s: %s", e.Host, e.Err)
}

// AuthError indicates that the server rejected the configured credentials.
//
type AuthError struct {
	Host     string
	Username string
	Err      error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("failed authenticating as %s on %s: %s",
		e.Username, e.Host, e.Err)
}

// RemoteFSError indicates that the server refused an operation against its
// filesystem - a missing target directory, or a failed store.
//
type RemoteFSError struct {
	Host string
	Path string
	Err  error
}

func (e *RemoteFSError) Error() string {
	return fmt.Sprintf("remote filesystem operation on %s against %s failed: %s",
		e.Path, e.Host, e.Err)
}

func IsConnectionError(err error) bool {
	_, ok := errors.Cause(err).(*ConnectionError)
	return ok
}

func IsAuthError(err error) bool {
	_, ok := errors.Cause(err).(*AuthError)
	return ok
}

func IsRemoteFSError(err error) bool {
	_, ok := errors.Cause(err).(*RemoteFSError)
	return ok
}
