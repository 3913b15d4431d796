package lockfile

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/objectledger-lab/objectledger/command/helper"
	"github.com/objectledger-lab/objectledger/packages"
)

var params = &lockfileParams{}

func GetCommand() *cobra.Command {
	lockfileCmd := &cobra.Command{
		Use:     "lockfile",
		Short:   "Generates the reproducible dependency lock file for a package",
		PreRunE: preRunCommand,
		Run:     runCommand,
	}

	setFlags(lockfileCmd)

	return lockfileCmd
}

func setFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(
		&params.packageDirRaw,
		packageDirFlag,
		"",
		"the directory containing the package manifest",
	)

	cmd.Flags().StringVar(
		&params.lockPathRaw,
		lockPathFlag,
		"",
		"the output path of the lock file (defaults to Move.lock in the package directory)",
	)

	_ = cmd.MarkFlagRequired(packageDirFlag)
}

func preRunCommand(_ *cobra.Command, _ []string) error {
	if err := params.validateFlags(); err != nil {
		return err
	}

	return params.initRawParams()
}

func runCommand(cmd *cobra.Command, _ []string) {
	lock, err := packages.BuildLockFile(params.manifest, params.resolver)
	if err != nil {
		helper.WriteError(cmd, err)

		return
	}

	file, err := os.Create(params.lockPathRaw)
	if err != nil {
		helper.WriteError(cmd, err)

		return
	}

	defer file.Close()

	if err := lock.Encode(file); err != nil {
		helper.WriteError(cmd, err)

		return
	}

	helper.WriteOutput(cmd, &LockfileResult{
		Package:  params.manifest.Package.Name,
		LockPath: params.lockPathRaw,
		Packages: len(lock.Packages),
	})
}
