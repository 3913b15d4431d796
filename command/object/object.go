package object

import (
	"github.com/spf13/cobra"

	"github.com/objectledger-lab/objectledger/command/object/get"
)

func GetCommand() *cobra.Command {
	objectCmd := &cobra.Command{
		Use:   "object",
		Short: "Top level object store interaction command",
	}

	objectCmd.AddCommand(
		get.GetCommand(),
	)

	return objectCmd
}
