package kvdb

import (
	"bytes"
	"sort"
	"sync"
)

// memoryDatabase is an in-memory implementation of the kv storage,
// used by tests and tooling that does not need persistence.
type memoryDatabase struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryDB() KVBatchStorage {
	return &memoryDatabase{data: make(map[string][]byte)}
}

func (kv *memoryDatabase) Has(key []byte) (bool, error) {
	kv.mu.RLock()
	defer kv.mu.RUnlock()

	_, ok := kv.data[string(key)]

	return ok, nil
}

func (kv *memoryDatabase) Get(key []byte) ([]byte, bool, error) {
	kv.mu.RLock()
	defer kv.mu.RUnlock()

	v, ok := kv.data[string(key)]
	if !ok {
		return nil, false, nil
	}

	out := make([]byte, len(v))
	copy(out, v)

	return out, true, nil
}

func (kv *memoryDatabase) Set(k, v []byte) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	val := make([]byte, len(v))
	copy(val, v)

	kv.data[string(k)] = val

	return nil
}

func (kv *memoryDatabase) Delete(key []byte) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	delete(kv.data, string(key))

	return nil
}

func (kv *memoryDatabase) Close() error {
	return nil
}

type memoryBatchOp struct {
	del   bool
	key   []byte
	value []byte
}

type memoryBatch struct {
	db  *memoryDatabase
	ops []memoryBatchOp
}

func (kv *memoryDatabase) NewBatch() Batch {
	return &memoryBatch{db: kv}
}

func (b *memoryBatch) Set(k, v []byte) error {
	b.ops = append(b.ops, memoryBatchOp{
		key:   append([]byte{}, k...),
		value: append([]byte{}, v...),
	})

	return nil
}

func (b *memoryBatch) Delete(k []byte) error {
	b.ops = append(b.ops, memoryBatchOp{del: true, key: append([]byte{}, k...)})

	return nil
}

func (b *memoryBatch) Write() error {
	b.db.mu.Lock()
	defer b.db.mu.Unlock()

	for _, op := range b.ops {
		if op.del {
			delete(b.db.data, string(op.key))
		} else {
			b.db.data[string(op.key)] = op.value
		}
	}

	return nil
}

type memoryIterator struct {
	keys   []string
	values [][]byte
	index  int
}

func (kv *memoryDatabase) NewIterator(prefix, start []byte) Iterator {
	kv.mu.RLock()
	defer kv.mu.RUnlock()

	from := append(append([]byte{}, prefix...), start...)

	keys := make([]string, 0)

	for k := range kv.data {
		if bytes.HasPrefix([]byte(k), prefix) && bytes.Compare([]byte(k), from) >= 0 {
			keys = append(keys, k)
		}
	}

	sort.Strings(keys)

	values := make([][]byte, len(keys))
	for i, k := range keys {
		values[i] = kv.data[k]
	}

	return &memoryIterator{keys: keys, values: values, index: -1}
}

func (it *memoryIterator) Next() bool {
	it.index++

	return it.index < len(it.keys)
}

func (it *memoryIterator) Key() []byte {
	if it.index < 0 || it.index >= len(it.keys) {
		return nil
	}

	return []byte(it.keys[it.index])
}

func (it *memoryIterator) Value() []byte {
	if it.index < 0 || it.index >= len(it.keys) {
		return nil
	}

	return it.values[it.index]
}

func (it *memoryIterator) Release() {}

func (it *memoryIterator) Error() error { return nil }
