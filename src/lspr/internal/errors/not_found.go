package errors

import (
	stderr "errors"
	"fmt"

	"github.com/gofrs/uuid"
)

// UUIDNotFoundError is a service domain error for not found.
type UUIDNotFoundError struct {
	UUID uuid.UUID
}

// Error is an implementation of the error interface.
func (n *UUIDNotFoundError) Error() string {
	return fmt.Sprintf("UUID %q not found", n.UUID)
}

// NotFoundUUID returns an UUID and true if UUIDNotFoundError is part of the
// error chain.
func NotFoundUUID(e error) (_ uuid.UUID, ok bool) {
	var nf *UUIDNotFoundError
	if !stderr.As(e, &nf) {
		return uuid.Nil, false
	}
	return nf.UUID, true
}

// NoSessionFoundError indicates that a session cannot be found within the context.
type NoSessionFoundError struct{}

// Error is an implementation of the error interface.
func (n *NoSessionFoundError) Error() string {
	return "no session found in context"
}

// FolderNotFoundError indicates that a workspace folder is not attached to any session.
type FolderNotFoundError struct {
	Folder string
}

// Error is an implementation of the error interface.
func (n *FolderNotFoundError) Error() string {
	return fmt.Sprintf("workspace folder %q not found", n.Folder)
}

// ServerNotFoundError indicates that no adapter is registered under the given name.
type ServerNotFoundError struct {
	Name string
}

// Error is an implementation of the error interface.
func (n *ServerNotFoundError) Error() string {
	return fmt.Sprintf("no language server registered under %q", n.Name)
}

// ServerNotRunningError indicates that a server instance is not tracked as running.
type ServerNotRunningError struct {
	ID int64
}

// Error is an implementation of the error interface.
func (n *ServerNotRunningError) Error() string {
	return fmt.Sprintf("language server %d is not running", n.ID)
}
