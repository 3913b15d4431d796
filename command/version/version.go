package version

import (
	"github.com/spf13/cobra"

	"github.com/objectledger-lab/objectledger/command/helper"
	"github.com/objectledger-lab/objectledger/versioning"
)

func GetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Returns the current version",
		Args:  cobra.NoArgs,
		Run:   runCommand,
	}
}

func runCommand(cmd *cobra.Command, _ []string) {
	helper.WriteOutput(cmd, &VersionResult{
		Version:   versioning.Version,
		Commit:    versioning.Commit,
		BuildTime: versioning.BuildTime,
	})
}
