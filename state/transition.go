package state

import (
	"encoding/binary"

	"github.com/hashicorp/go-hclog"

	"github.com/objectledger-lab/objectledger/helper/keccak"
	"github.com/objectledger-lab/objectledger/packages"
	"github.com/objectledger-lab/objectledger/state/runtime"
	"github.com/objectledger-lab/objectledger/state/stypes"
	"github.com/objectledger-lab/objectledger/types"
)

// StoreReader is the read-only view of the object table the executor
// needs: input resolution plus the id-indexed lookups of the effects
// computation.
type StoreReader interface {
	ObjectResolver
	ObjectSource
}

// Executor drives one transaction through argument validation, the
// opaque execution step, version assignment and effects
// classification. It holds no mutable state between invocations;
// transactions over disjoint single-owner objects may be executed
// concurrently on the same Executor.
type Executor struct {
	logger  hclog.Logger
	store   StoreReader
	engine  runtime.Engine
	gate    *packages.Gate
	metrics *Metrics
}

func NewExecutor(logger hclog.Logger, store StoreReader, engine runtime.Engine, metrics *Metrics) *Executor {
	return &Executor{
		logger:  logger.Named("executor"),
		store:   store,
		engine:  engine,
		gate:    packages.NewGate(logger),
		metrics: metrics,
	}
}

// ExecuteTransaction computes the effects record of one transaction on
// the single-owner path. Input errors (malformed commands, unknown
// objects, ownership denials) abort with no effects and no gas charge;
// execution failures return a failed effects record that still
// consumes gas.
func (e *Executor) ExecuteTransaction(tx *types.Transaction) (*stypes.EffectsRecord, error) {
	return e.execute(tx, false)
}

// ExecuteOrderedTransaction is the shared-object path. The caller must
// feed transactions touching the same shared object in the
// consensus-agreed order; the executor never reorders or retries.
func (e *Executor) ExecuteOrderedTransaction(tx *types.Transaction) (*stypes.EffectsRecord, error) {
	return e.execute(tx, true)
}

func (e *Executor) execute(tx *types.Transaction, consensusOrdered bool) (*stypes.EffectsRecord, error) {
	inputs, err := e.resolveInputs(tx)
	if err != nil {
		return nil, err
	}

	gas := inputs[tx.GasObject]
	if gas.Owner.Kind != types.OwnerAddress || gas.Owner.Address != tx.Sender {
		return nil, types.ErrNotAuthorized
	}

	auth := &AuthContext{
		Signer:           tx.Sender,
		Inputs:           inputSet(inputs),
		Resolver:         e.store,
		ConsensusOrdered: consensusOrdered,
	}

	if err := NewArgContext(auth).ValidateCommands(tx.Commands); err != nil {
		return nil, err
	}

	published, err := e.runPublicationGate(tx, gas)
	if err != nil {
		return nil, err
	}

	result, err := e.engine.Execute(tx, e.store)
	if err != nil {
		return nil, err
	}

	pre := make(map[types.ObjectID]*PreObject, len(inputs))
	for id, obj := range inputs {
		pre[id] = &PreObject{Version: obj.Version, Digest: obj.Digest()}
	}

	writes := result.Writes
	status := stypes.SuccessStatus()

	if result.Failed() {
		// The transaction ran and failed: only the gas object moves,
		// but the record still commits.
		writes = runtime.TxWrites{}
		status = stypes.FailureStatus(result.Err, result.FailedCommand)

		e.metrics.ExecutionFailed()
	} else {
		writes.Written = append(writes.Written, published...)
	}

	if !writesContain(writes.Written, tx.GasObject) {
		writes.Written = append(writes.Written, gas.Copy())
	}

	effects, err := BuildEffects(pre, &writes, e.store, tx.GasObject, status)
	if err != nil {
		return nil, err
	}

	e.metrics.TransactionExecuted()
	e.metrics.EffectsObserved(effects)

	e.logger.Debug("transaction executed",
		"sender", tx.Sender,
		"commands", len(tx.Commands),
		"success", status.Success,
		"effects", effects.String(),
	)

	return effects, nil
}

// resolveInputs loads every object the command list consumes, gas
// included. An unknown id is an input error that aborts the
// transaction before anything runs.
func (e *Executor) resolveInputs(tx *types.Transaction) (map[types.ObjectID]*stypes.Object, error) {
	ids := []types.ObjectID{tx.GasObject}

	for _, cmd := range tx.Commands {
		switch cmd.Kind {
		case types.CommandCall:
			for _, arg := range cmd.Args {
				switch arg.Kind {
				case types.ArgObject:
					ids = append(ids, arg.Object)
				case types.ArgObjVec:
					ids = append(ids, arg.Objects...)
				case types.ArgPure:
				}
			}
		case types.CommandMakeObjVec:
			ids = append(ids, cmd.Elements...)
		case types.CommandPublish:
		}
	}

	inputs := make(map[types.ObjectID]*stypes.Object, len(ids))

	for _, id := range ids {
		if _, ok := inputs[id]; ok {
			continue
		}

		obj, err := e.store.ResolveObject(id)
		if err != nil {
			return nil, err
		}

		inputs[id] = obj
	}

	return inputs, nil
}

// runPublicationGate validates every publish command and materializes
// its package and upgrade capability objects.
func (e *Executor) runPublicationGate(tx *types.Transaction, gas *stypes.Object) ([]*stypes.Object, error) {
	var created []*stypes.Object

	for cmdIdx := range tx.Commands {
		cmd := &tx.Commands[cmdIdx]
		if cmd.Kind != types.CommandPublish {
			continue
		}

		modules, err := e.gate.Validate(cmdIdx, packages.FromCommand(cmd))
		if err != nil {
			return nil, err
		}

		pkgID := deriveObjectID(tx, gas.Version, cmdIdx, 0)
		capID := deriveObjectID(tx, gas.Version, cmdIdx, 1)

		pkg, upgradeCap := packages.PackageObjects(tx.Sender, pkgID, capID, modules)
		created = append(created, pkg, upgradeCap)
	}

	return created, nil
}

// deriveObjectID produces the deterministic id of an object created by
// the system itself, bound to the transaction identity so that
// independent validators derive the same id.
func deriveObjectID(tx *types.Transaction, gasVersion types.Version, cmdIdx, counter int) types.ObjectID {
	var scratch [24]byte

	binary.BigEndian.PutUint64(scratch[0:], uint64(gasVersion))
	binary.BigEndian.PutUint64(scratch[8:], uint64(cmdIdx))
	binary.BigEndian.PutUint64(scratch[16:], uint64(counter))

	sum := keccak.Keccak256(nil, tx.Sender.Bytes(), tx.GasObject.Bytes(), scratch[:])

	return types.BytesToObjectID(sum)
}

func inputSet(inputs map[types.ObjectID]*stypes.Object) map[types.ObjectID]struct{} {
	set := make(map[types.ObjectID]struct{}, len(inputs))
	for id := range inputs {
		set[id] = struct{}{}
	}

	return set
}

func writesContain(written []*stypes.Object, id types.ObjectID) bool {
	for _, obj := range written {
		if obj.ID == id {
			return true
		}
	}

	return false
}
