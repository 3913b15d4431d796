package helper

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

const JSONOutputFlag = "json"

// CommandResult is the output of one CLI command, renderable as plain
// text or JSON.
type CommandResult interface {
	GetOutput() string
}

func RegisterJSONOutputFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().Bool(
		JSONOutputFlag,
		false,
		"get the command results in the JSON format",
	)
}

// FormatKV renders "key|value" rows with aligned columns.
func FormatKV(in []string) string {
	maxKey := 0

	rows := make([][2]string, 0, len(in))

	for _, raw := range in {
		parts := strings.SplitN(raw, "|", 2)

		row := [2]string{parts[0], ""}
		if len(parts) == 2 {
			row[1] = parts[1]
		}

		if len(row[0]) > maxKey {
			maxKey = len(row[0])
		}

		rows = append(rows, row)
	}

	var s strings.Builder

	for i, row := range rows {
		if i > 0 {
			s.WriteString("\n")
		}

		fmt.Fprintf(&s, "%-*s = %s", maxKey, row[0], row[1])
	}

	return s.String()
}

// WriteOutput renders the result honoring the --json flag.
func WriteOutput(cmd *cobra.Command, result CommandResult) {
	if asJSON, _ := cmd.Flags().GetBool(JSONOutputFlag); asJSON {
		out, err := json.Marshal(result)
		if err != nil {
			_, _ = fmt.Fprintln(os.Stderr, err)

			return
		}

		_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(out))

		return
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), result.GetOutput())
}

// WriteError prints the error and exits with a non-zero code.
func WriteError(cmd *cobra.Command, err error) {
	_, _ = fmt.Fprintln(cmd.ErrOrStderr(), err)

	os.Exit(1)
}
