package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/objectledger-lab/objectledger/command/helper"
	"github.com/objectledger-lab/objectledger/command/lockfile"
	"github.com/objectledger-lab/objectledger/command/object"
	"github.com/objectledger-lab/objectledger/command/version"
)

type RootCommand struct {
	baseCmd *cobra.Command
}

func NewRootCommand() *RootCommand {
	rootCommand := &RootCommand{
		baseCmd: &cobra.Command{
			Short: "Objectledger is a versioned object store and transaction effects engine",
		},
	}

	helper.RegisterJSONOutputFlag(rootCommand.baseCmd)

	rootCommand.registerSubCommands()

	return rootCommand
}

func (rc *RootCommand) registerSubCommands() {
	rc.baseCmd.AddCommand(
		version.GetCommand(),
		object.GetCommand(),
		lockfile.GetCommand(),
	)
}

func (rc *RootCommand) Execute() {
	if err := rc.baseCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)

		os.Exit(1)
	}
}
