package packages

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"

	"github.com/objectledger-lab/objectledger/types"
)

// Publication is a resolved module-publish command.
type Publication struct {
	Modules      [][]byte
	Dependencies []*types.PackageDependency

	// WithUnpublishedDeps opts in to bundling unpublished dependencies
	// into this publish instead of rejecting them.
	WithUnpublishedDeps bool
}

// FromCommand extracts the publication of a publish command.
func FromCommand(cmd *types.Command) *Publication {
	return &Publication{
		Modules:             cmd.Modules,
		Dependencies:        cmd.Dependencies,
		WithUnpublishedDeps: cmd.WithUnpublishedDeps,
	}
}

// Gate validates a publish command before execution.
type Gate struct {
	logger hclog.Logger
}

func NewGate(logger hclog.Logger) *Gate {
	return &Gate{logger: logger.Named("gate")}
}

// Validate checks the publication and returns the full, ordered module
// list, with unpublished dependency modules bundled in when the
// override is set.
func (g *Gate) Validate(cmdIdx int, pub *Publication) ([]*Module, error) {
	if len(pub.Modules) == 0 || allEmpty(pub.Modules) {
		return nil, types.ErrEmptyCommandInput
	}

	modules := make([]*Module, 0, len(pub.Modules))
	seenNames := make(map[string]struct{}, len(pub.Modules))
	seenBlobs := make(map[string]struct{}, len(pub.Modules))

	appendModule := func(blob []byte) error {
		if _, dup := seenBlobs[string(blob)]; dup {
			return &types.VerificationError{Command: cmdIdx}
		}

		seenBlobs[string(blob)] = struct{}{}

		m, err := ParseModule(blob)
		if err != nil {
			g.logger.Debug("module blob rejected", "err", err)

			return &types.VerificationError{Command: cmdIdx}
		}

		if _, dup := seenNames[m.Name]; dup {
			return &types.VerificationError{Command: cmdIdx}
		}

		seenNames[m.Name] = struct{}{}
		modules = append(modules, m)

		return nil
	}

	for _, blob := range pub.Modules {
		if err := appendModule(blob); err != nil {
			return nil, err
		}
	}

	if err := g.checkDependencies(pub); err != nil {
		return nil, err
	}

	if pub.WithUnpublishedDeps {
		for _, dep := range pub.Dependencies {
			if dep.Published() {
				continue
			}

			for _, blob := range dep.Modules {
				if err := appendModule(blob); err != nil {
					return nil, err
				}
			}
		}
	}

	return modules, nil
}

// checkDependencies requires every dependency that is not part of this
// publish to carry an on-chain published address, unless the caller
// explicitly allowed unpublished dependencies.
func (g *Gate) checkDependencies(pub *Publication) error {
	if pub.WithUnpublishedDeps {
		return nil
	}

	var result *multierror.Error

	for _, dep := range pub.Dependencies {
		if dep.Published() {
			continue
		}

		result = multierror.Append(result, &types.ModulePublishFailureError{
			Reason: fmt.Sprintf(
				"package dependency %q does not specify a published address. "+
					"If this is intentional, you may use the --with-unpublished-dependencies flag to "+
					"continue publishing these dependencies as part of your package",
				dep.Name,
			),
		})
	}

	return result.ErrorOrNil()
}

func allEmpty(blobs [][]byte) bool {
	for _, b := range blobs {
		if len(b) > 0 {
			return false
		}
	}

	return true
}
