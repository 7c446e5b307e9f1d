package mapper

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/uber/lsp-router/src/lspr/entity"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
)

// IntentToCommand resolves the command line and environment for a launch
// intent. A binary override in the config snapshot replaces the adapter's
// default command and arguments; override env entries extend the daemon
// environment in key order.
func IntentToCommand(intent entity.LaunchIntent, adapter entity.Adapter) (path string, args []string, env []string) {
	path = adapter.Command
	args = adapter.Args
	env = os.Environ()

	b := intent.Config.Binary
	if b == nil {
		return path, args, env
	}
	if b.Path != "" {
		path = b.Path
		args = b.Args
	}

	keys := make([]string, 0, len(b.Env))
	for k := range b.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		env = append(env, k+"="+b.Env[k])
	}
	return path, args, env
}

// IntentToInitializeParams builds the initialize request sent to a freshly
// launched language server. The server is rooted at the intent's detected
// root, not the workspace folder.
func IntentToInitializeParams(intent entity.LaunchIntent) *protocol.InitializeParams {
	root := intent.Root.Abs()
	params := &protocol.InitializeParams{
		ProcessID: int32(os.Getpid()),
		ClientInfo: &protocol.ClientInfo{
			Name: "lspr-daemon",
		},
		RootURI: protocol.DocumentURI(uri.File(root)),
		WorkspaceFolders: []protocol.WorkspaceFolder{
			{
				URI:  string(uri.File(root)),
				Name: filepath.Base(root),
			},
		},
	}
	if len(intent.Config.InitializationOptions) > 0 {
		params.InitializationOptions = intent.Config.InitializationOptions
	}
	return params
}
