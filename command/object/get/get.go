package get

import (
	"github.com/spf13/cobra"

	"github.com/objectledger-lab/objectledger/command/helper"
	"github.com/objectledger-lab/objectledger/types"
)

var params = &getParams{}

func GetCommand() *cobra.Command {
	getCmd := &cobra.Command{
		Use:     "get",
		Short:   "Returns the latest ref and state of an object",
		PreRunE: preRunCommand,
		Run:     runCommand,
	}

	setFlags(getCmd)

	return getCmd
}

func setFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(
		&params.dataDirRaw,
		dataDirFlag,
		"",
		"the data directory of the object store",
	)

	cmd.Flags().StringVar(
		&params.idRaw,
		idFlag,
		"",
		"the id of the object to look up",
	)

	_ = cmd.MarkFlagRequired(dataDirFlag)
	_ = cmd.MarkFlagRequired(idFlag)
}

func preRunCommand(_ *cobra.Command, _ []string) error {
	return params.validateFlags()
}

func runCommand(cmd *cobra.Command, _ []string) {
	store, err := params.openStore()
	if err != nil {
		helper.WriteError(cmd, err)

		return
	}

	defer store.Close()

	ref, ok, err := store.LatestRef(params.id)
	if err != nil {
		helper.WriteError(cmd, err)

		return
	}

	if !ok {
		helper.WriteError(cmd, &types.ObjectNotFoundError{ID: params.id})

		return
	}

	result := &GetResult{
		ID:      ref.ID.String(),
		Version: uint64(ref.Version),
		Digest:  ref.Digest.String(),
	}

	switch {
	case ref.Digest.IsWrapped():
		result.Status = "wrapped"
	case ref.Digest.IsDeleted():
		result.Status = "deleted"
	default:
		result.Status = "live"

		obj, err := store.GetObject(params.id)
		if err != nil {
			helper.WriteError(cmd, err)

			return
		}

		result.Owner = obj.Owner.String()
		result.Type = obj.Type.String()
	}

	helper.WriteOutput(cmd, result)
}
