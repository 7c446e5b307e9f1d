package mapper

import (
	"context"
	"encoding/json"

	"github.com/gofrs/uuid"
	"github.com/uber/lsp-router/src/lspr/entity"
	"github.com/uber/lsp-router/src/lspr/internal/errors"
	"github.com/uber/lsp-router/src/lspr/model"
	"go.lsp.dev/jsonrpc2"
)

// RequestToRestartServerParams maps the parameters from a jsonrpc2.Request into entity.RestartServerParams.
func RequestToRestartServerParams(req jsonrpc2.Request) (*entity.RestartServerParams, error) {
	params := entity.RestartServerParams{}
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return nil, wrapErrParse(err)
	}
	return &params, nil
}

// RequestToShareServerParams maps the parameters from a jsonrpc2.Request into entity.ShareServerParams.
func RequestToShareServerParams(req jsonrpc2.Request) (*entity.ShareServerParams, error) {
	params := entity.ShareServerParams{}
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return nil, wrapErrParse(err)
	}
	return &params, nil
}

// SessionToModel maps a Session entity to its model equivalent.
func SessionToModel(f *entity.Session) *model.Session {
	folders := make([]string, 0, len(f.WorkspaceFolders))
	for _, folder := range f.WorkspaceFolders {
		folders = append(folders, string(folder))
	}
	return &model.Session{
		UUID:             f.UUID,
		InitializeParams: f.InitializeParams,
		Conn:             f.Conn,
		WorkspaceFolders: folders,
		Env:              f.Env,
		RouterEnabled:    f.RouterEnabled,
	}
}

// ModelToSession maps a model Session to its entity equivalent.
func ModelToSession(f *model.Session) (*entity.Session, error) {
	folders := make([]entity.WorkspaceFolderID, 0, len(f.WorkspaceFolders))
	for _, folder := range f.WorkspaceFolders {
		folders = append(folders, entity.WorkspaceFolderID(folder))
	}
	return &entity.Session{
		UUID:             f.UUID,
		InitializeParams: f.InitializeParams,
		Conn:             f.Conn,
		WorkspaceFolders: folders,
		Env:              f.Env,
		RouterEnabled:    f.RouterEnabled,
	}, nil
}

// UUIDToSession initializes a new Session entity with the assigned uuid and connection.
func UUIDToSession(u uuid.UUID, c *jsonrpc2.Conn) *entity.Session {
	return &entity.Session{
		UUID:          u,
		Conn:          c,
		RouterEnabled: true,
	}
}

// ContextToSessionUUID extracts the UUID from a context
func ContextToSessionUUID(c context.Context) (uuid.UUID, error) {
	s, ok := c.Value(entity.SessionContextKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, &errors.NoSessionFoundError{}
	}
	return s, nil
}
