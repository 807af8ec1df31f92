package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/taskrank/internal/app"
	"github.com/felixgeelhaar/taskrank/internal/ranking/infrastructure/taskfile"
	"github.com/felixgeelhaar/taskrank/internal/ranking/infrastructure/validation"
)

// stdinPath names standard input on the command line.
const stdinPath = "-"

// readTaskFile reads path (or stdin for "" and "-") and normalizes it into a
// JSON request body.
func readTaskFile(cmd *cobra.Command, path, formatName string) ([]byte, error) {
	format, err := taskfile.ParseFormat(formatName)
	if err != nil {
		return nil, err
	}

	var data []byte
	if path == "" || path == stdinPath {
		data, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read standard input: %w", err)
		}
	} else {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		if format == taskfile.FormatAuto {
			format = taskfile.DetectFormat(path)
		}
	}

	return taskfile.Decode(data, format)
}

// readRequest reads and type-checks a task file. Required fields are
// checked by the command handlers.
func readRequest(cmd *cobra.Command, c *app.Container, path, formatName string) (*validation.Request, error) {
	body, err := readTaskFile(cmd, path, formatName)
	if err != nil {
		return nil, err
	}
	return c.Validator.Decode(validation.KindSuggest, body)
}

func pathArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// strategyFlag returns the --strategy value, or nil when the flag was not
// given so the task file or the configured default applies.
func strategyFlag(cmd *cobra.Command, value string) *string {
	if value == "" && !cmd.Flags().Changed("strategy") {
		return nil
	}
	return &value
}
