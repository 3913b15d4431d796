package types

import (
	"errors"
	"fmt"
)

// ArgumentErrorKind enumerates the per-argument failure modes surfaced
// during command validation and execution.
type ArgumentErrorKind uint8

const (
	// InvalidBCSBytes means a pure argument's canonical encoding could
	// not be decoded into the expected value shape.
	InvalidBCSBytes ArgumentErrorKind = iota

	// InvalidUsageOfTakenValue means an object already consumed by
	// value earlier in the transaction was used again.
	InvalidUsageOfTakenValue

	// SharedObjectInVector means a shared object was placed inside a
	// vector-of-objects argument, which has no per-element consensus
	// ordering.
	SharedObjectInVector

	// TypeMismatch means a vector element's on-chain runtime type does
	// not match the vector's declared or inferred element type.
	TypeMismatch
)

func (k ArgumentErrorKind) String() string {
	switch k {
	case InvalidBCSBytes:
		return "InvalidBCSBytes"
	case InvalidUsageOfTakenValue:
		return "InvalidUsageOfTakenValue"
	case SharedObjectInVector:
		return "SharedObjectInVector"
	case TypeMismatch:
		return "TypeMismatch"
	}

	return fmt.Sprintf("ArgumentErrorKind(%d)", uint8(k))
}

// CommandArgumentError reports a failure tied to a specific argument of
// a specific command.
type CommandArgumentError struct {
	Kind    ArgumentErrorKind
	Command int
	Arg     int
}

func (e *CommandArgumentError) Error() string {
	return fmt.Sprintf("command %d, argument %d: %s", e.Command, e.Arg, e.Kind)
}

func (e *CommandArgumentError) Is(target error) bool {
	other, ok := target.(*CommandArgumentError)
	if !ok {
		return false
	}

	return e.Kind == other.Kind
}

// Input errors abort the transaction before execution, with no state
// change and no gas charge.
var (
	// ErrEmptyCommandInput rejects commands whose required input list is
	// empty, such as a publish with no modules or an untagged empty
	// object vector.
	ErrEmptyCommandInput = errors.New("empty command input")

	// ErrSharedObjectAsOwnedInput rejects a shared object passed through
	// the plain single-owner input path.
	ErrSharedObjectAsOwnedInput = errors.New("shared object used as single-owner input")

	// ErrImmutableObjectMutation rejects any mutation of an immutable
	// object regardless of signer.
	ErrImmutableObjectMutation = errors.New("immutable object cannot be mutated")

	// ErrNotAuthorized rejects an input object whose owner did not sign
	// the transaction.
	ErrNotAuthorized = errors.New("transaction signer is not the object owner")

	// ErrVerification is the generic verification or deserialization
	// failure for malformed modules and mismatched value shapes.
	ErrVerification = errors.New("verification or deserialization error")
)

// VerificationError locates a generic verification or deserialization
// failure at the command that owns the malformed input.
type VerificationError struct {
	Command int
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("command %d: %s", e.Command, ErrVerification)
}

func (e *VerificationError) Is(target error) bool {
	if target == ErrVerification {
		return true
	}

	_, ok := target.(*VerificationError)

	return ok
}

// ObjectNotFoundError reports a reference to an object id with no
// current version in storage.
type ObjectNotFoundError struct {
	ID ObjectID
}

func (e *ObjectNotFoundError) Error() string {
	return fmt.Sprintf("object %s not found", e.ID)
}

func (e *ObjectNotFoundError) Is(target error) bool {
	_, ok := target.(*ObjectNotFoundError)

	return ok
}

// InvalidChildObjectArgumentError reports an object-owned child passed
// directly as a transaction argument without its authenticating parent.
// It is deliberately distinct from ErrNotAuthorized: the caller tried to
// bypass the ownership chain, not merely use someone else's object.
type InvalidChildObjectArgumentError struct {
	Child  ObjectID
	Parent ObjectID
}

func (e *InvalidChildObjectArgumentError) Error() string {
	return fmt.Sprintf("InvalidChildObjectArgument: child %s must be accessed through parent %s", e.Child, e.Parent)
}

func (e *InvalidChildObjectArgumentError) Is(target error) bool {
	_, ok := target.(*InvalidChildObjectArgumentError)

	return ok
}

// ModulePublishFailureError carries a human-readable explanation of an
// unmet publication constraint, typically resolved by operator action.
type ModulePublishFailureError struct {
	Reason string
}

func (e *ModulePublishFailureError) Error() string {
	return "module publish failure: " + e.Reason
}

func (e *ModulePublishFailureError) Is(target error) bool {
	_, ok := target.(*ModulePublishFailureError)

	return ok
}
