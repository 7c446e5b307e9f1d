package handler

import (
	"fmt"
	"os"
	"strconv"

	"github.com/uber/lsp-router/src/lspr/internal/serverinfofile"
)

const (
	_infoFileKeyPID     = "pid"
	_infoFileKeyService = "service"

	_serviceName = "lspr-daemon"
)

// Output daemon identification to the Server Info file so IDE extensions can
// discover a running instance. Connection methods (e.g. JSON-RPC) add their
// own address fields independently.
func outputDaemonInfo(infofile serverinfofile.ServerInfoFile) error {
	if err := infofile.UpdateField(_infoFileKeyService, _serviceName); err != nil {
		return fmt.Errorf("outputting service name to info file: %w", err)
	}
	if err := infofile.UpdateField(_infoFileKeyPID, strconv.Itoa(os.Getpid())); err != nil {
		return fmt.Errorf("outputting pid to info file: %w", err)
	}

	return nil
}
