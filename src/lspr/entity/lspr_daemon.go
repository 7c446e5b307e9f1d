// Package entity contains the domain types for the lspr-daemon service.
package entity

import (
	"github.com/gofrs/uuid"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
)

type keyType string

// SessionContextKey indicates the key to be used to identify the session UUID in the context.
const SessionContextKey keyType = "SessionUUID"

// RouterConfigKey is the key that contains router specific configuration.
const RouterConfigKey = "router"

// Session entity representing a single IDE session.
type Session struct {
	UUID             uuid.UUID                  `json:"uuid" zap:"uuid"`
	InitializeParams *protocol.InitializeParams `json:"-" zap:"-"`
	Conn             *jsonrpc2.Conn             `json:"-" zap:"-"`
	WorkspaceFolders []WorkspaceFolderID        `json:"workspaceFolders" zap:"workspaceFolders"`
	Env              []string                   `json:"-" zap:"-"`
	RouterEnabled    bool                       `json:"routerEnabled" zap:"routerEnabled"`
}

// HasFolder returns true if the session has the given workspace folder attached.
func (s *Session) HasFolder(folder WorkspaceFolderID) bool {
	for _, f := range s.WorkspaceFolders {
		if f == folder {
			return true
		}
	}
	return false
}

// RestartServerParams are the arguments to the lspr.restartServer command
// and the lspr/restartServer method.
type RestartServerParams struct {
	Server ServerName `json:"server"`
}

// ShareServerParams are the arguments to the lspr.shareServer command and the
// lspr/shareServer method. From and To are workspace folder paths.
type ShareServerParams struct {
	From     string       `json:"from"`
	To       string       `json:"to"`
	Server   ServerName   `json:"server"`
	Language LanguageName `json:"language"`
}

// TextDocumentIdentifierWithSession is a wrapper around TextDocumentIdentifier to include the session UUID.
type TextDocumentIdentifierWithSession struct {
	Document    protocol.TextDocumentIdentifier
	SessionUUID uuid.UUID
}

// ClientName identifies the name that will be set in the initialization parameters for a given client.
type ClientName string

const (
	// ClientNameVSCode is the name of the VSCode client.
	ClientNameVSCode ClientName = "Visual Studio Code"
	// ClientNameCursor is the name of the Cursor client.
	ClientNameCursor ClientName = "Cursor"
)

// IsVSCodeBased returns true if the client is a VS Code based client.
func (c ClientName) IsVSCodeBased() bool {
	return c == ClientNameVSCode || c == ClientNameCursor
}
