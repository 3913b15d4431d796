package state

import (
	"github.com/objectledger-lab/objectledger/state/stypes"
	"github.com/objectledger-lab/objectledger/types"
)

// InvalidPureArg is the failure reported when a pure argument's
// canonical bytes cannot be decoded into the declared parameter type.
// The interpreter raises it during execution, so the transaction still
// runs and charges gas.
func InvalidPureArg(cmdIdx, argIdx int) error {
	return &types.CommandArgumentError{
		Kind:    types.InvalidBCSBytes,
		Command: cmdIdx,
		Arg:     argIdx,
	}
}

type argUse struct {
	command  int
	arg      int
	inVector bool
}

// ArgContext is the transaction-scoped bookkeeping that prevents unsafe
// or duplicate by-value use of objects across the command list. It is
// created per transaction and discarded with it.
type ArgContext struct {
	auth  *AuthContext
	taken map[types.ObjectID]argUse
}

func NewArgContext(auth *AuthContext) *ArgContext {
	return &ArgContext{
		auth:  auth,
		taken: make(map[types.ObjectID]argUse),
	}
}

// ValidateCommands walks the ordered command list exactly once and
// checks every object-valued argument, scalar or vector element. It
// runs before execution; the interpreter never sees an invalid
// argument shape.
func (c *ArgContext) ValidateCommands(cmds []types.Command) error {
	for cmdIdx, cmd := range cmds {
		switch cmd.Kind {
		case types.CommandCall:
			if err := c.validateCallArgs(cmdIdx, cmd.Args); err != nil {
				return err
			}
		case types.CommandMakeObjVec:
			if err := c.validateObjVec(cmdIdx, 0, cmd.ElemType, cmd.Elements); err != nil {
				return err
			}
		case types.CommandPublish:
			// Checked by the publication gate.
		}
	}

	return nil
}

func (c *ArgContext) validateCallArgs(cmdIdx int, args []types.CallArg) error {
	for argIdx, arg := range args {
		switch arg.Kind {
		case types.ArgPure:
		case types.ArgObject:
			obj, err := c.takeObject(cmdIdx, argIdx, arg.Object, false)
			if err != nil {
				return err
			}

			if err := Authenticate(c.auth, obj); err != nil {
				return err
			}
		case types.ArgObjVec:
			if err := c.validateObjVec(cmdIdx, argIdx, nil, arg.Objects); err != nil {
				return err
			}
		}
	}

	return nil
}

// validateObjVec checks a vector-of-objects argument. The element type
// is the declared tag when present, otherwise inferred from the first
// element; an untagged empty vector has no inferable type and is
// rejected outright.
func (c *ArgContext) validateObjVec(cmdIdx, argIdx int, elemType *types.TypeTag, elems []types.ObjectID) error {
	if elemType == nil && len(elems) == 0 {
		return types.ErrEmptyCommandInput
	}

	for _, id := range elems {
		obj, err := c.takeObject(cmdIdx, argIdx, id, true)
		if err != nil {
			return err
		}

		if obj.Owner.Kind == types.OwnerShared {
			return &types.CommandArgumentError{
				Kind:    types.SharedObjectInVector,
				Command: cmdIdx,
				Arg:     argIdx,
			}
		}

		if err := Authenticate(c.auth, obj); err != nil {
			return err
		}

		if elemType == nil {
			inferred := obj.Type
			elemType = &inferred

			continue
		}

		if !obj.Type.Equal(*elemType) {
			return &types.VerificationError{Command: cmdIdx}
		}
	}

	return nil
}

// takeObject consumes an object by value. A second by-value use is
// reported at the vector position when either use sits inside a
// vector, so the error index is stable regardless of argument order.
func (c *ArgContext) takeObject(cmdIdx, argIdx int, id types.ObjectID, inVector bool) (*stypes.Object, error) {
	if prev, ok := c.taken[id]; ok {
		at := argUse{command: cmdIdx, arg: argIdx, inVector: inVector}
		if !inVector && prev.inVector {
			at = prev
		}

		return nil, &types.CommandArgumentError{
			Kind:    types.InvalidUsageOfTakenValue,
			Command: at.command,
			Arg:     at.arg,
		}
	}

	obj, err := c.auth.Resolver.ResolveObject(id)
	if err != nil {
		return nil, err
	}

	c.taken[id] = argUse{command: cmdIdx, arg: argIdx, inVector: inVector}

	return obj, nil
}
