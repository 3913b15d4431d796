package types

import "fmt"

// TypeTag names an on-chain runtime type declared by a published module.
type TypeTag struct {
	Package ObjectID
	Module  string
	Name    string
}

func (t TypeTag) String() string {
	return fmt.Sprintf("%s::%s::%s", t.Package, t.Module, t.Name)
}

func (t TypeTag) Equal(o TypeTag) bool {
	return t == o
}

// CommandKind discriminates the command variants of a transaction.
type CommandKind uint8

const (
	// CommandCall invokes a published module function.
	CommandCall CommandKind = iota

	// CommandMakeObjVec builds a vector-of-objects value from object
	// inputs, to be consumed by a later call argument.
	CommandMakeObjVec

	// CommandPublish publishes a batch of module blobs as a new
	// package.
	CommandPublish
)

// ArgKind discriminates call argument variants.
type ArgKind uint8

const (
	// ArgPure is a canonically encoded primitive value.
	ArgPure ArgKind = iota

	// ArgObject consumes a single object input by value.
	ArgObject

	// ArgObjVec consumes a list of object inputs as one vector value.
	ArgObjVec
)

// CallArg is one argument of a call command. Only the field selected by
// Kind is meaningful.
type CallArg struct {
	Kind ArgKind

	// Pure holds the canonical encoding, for ArgPure.
	Pure []byte

	// Object is the consumed object id, for ArgObject.
	Object ObjectID

	// Objects are the vector element ids in order, for ArgObjVec.
	Objects []ObjectID
}

func PureArg(b []byte) CallArg {
	return CallArg{Kind: ArgPure, Pure: b}
}

func ObjectArg(id ObjectID) CallArg {
	return CallArg{Kind: ArgObject, Object: id}
}

func ObjVecArg(ids ...ObjectID) CallArg {
	return CallArg{Kind: ArgObjVec, Objects: ids}
}

// Command is one step of a transaction. Only the fields of the variant
// selected by Kind are meaningful.
type Command struct {
	Kind CommandKind

	// Call fields.
	Package  ObjectID
	Module   string
	Function string
	Args     []CallArg

	// MakeObjVec fields. A nil ElemType with zero Elements is invalid:
	// the element type cannot be inferred.
	ElemType *TypeTag
	Elements []ObjectID

	// Publish fields.
	Modules      [][]byte
	Dependencies []*PackageDependency

	// WithUnpublishedDeps opts in to bundling unpublished dependencies
	// into the publish instead of rejecting them.
	WithUnpublishedDeps bool
}

// PackageDependency is one package a publish depends on: either
// already published on-chain at a known address, or unpublished with
// its module blobs available for bundling.
type PackageDependency struct {
	Name        string
	PublishedAt ObjectID
	Modules     [][]byte
}

func (d *PackageDependency) Published() bool {
	return d.PublishedAt != ZeroObjectID
}

// Transaction is the resolved input of one effects computation: the
// signer, the gas object, and the ordered command list.
type Transaction struct {
	Sender    Address
	GasObject ObjectID
	Commands  []Command
}

func (t *Transaction) Copy() *Transaction {
	tt := &Transaction{
		Sender:    t.Sender,
		GasObject: t.GasObject,
	}

	if len(t.Commands) > 0 {
		tt.Commands = make([]Command, len(t.Commands))
		copy(tt.Commands, t.Commands)
	}

	return tt
}
