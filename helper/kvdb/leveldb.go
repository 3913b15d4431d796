package kvdb

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

const (
	// minCache is the minimum memory allocate to leveldb
	// half write, half read
	minCache = 16 // 16 MiB

	// minHandles is the minimum number of files handles to leveldb open files
	minHandles = 16

	DefaultCache        = 128  // 128 MiB
	DefaultHandles      = 512  // files handles to leveldb open files
	DefaultBloomKeyBits = 2048 // bloom filter bits (256 bytes)
)

type levelBatch struct {
	db    *leveldb.DB
	batch *leveldb.Batch
}

func (b *levelBatch) Set(k, v []byte) error {
	b.batch.Put(k, v)

	return nil
}

func (b *levelBatch) Delete(k []byte) error {
	b.batch.Delete(k)

	return nil
}

func (b *levelBatch) Write() error {
	return b.db.Write(b.batch, nil)
}

// levelDatabase is the leveldb implementation of the kv storage
type levelDatabase struct {
	db *leveldb.DB
}

// NewLevelDB opens (or creates) a leveldb backed storage at the given
// path.
func NewLevelDB(logger hclog.Logger, path string, cacheSize, handles int) (KVBatchStorage, error) {
	cacheSize = max(cacheSize, minCache)
	handles = max(handles, minHandles)

	options := &opt.Options{
		BlockCacheCapacity:     cacheSize * opt.MiB,
		OpenFilesCacheCapacity: handles,
		Filter:                 filter.NewBloomFilter(10),
	}

	logger.Info("leveldb",
		"path", path,
		"BlockCacheCapacity", fmt.Sprintf("%d MiB", cacheSize),
		"OpenFilesCacheCapacity", handles,
	)

	db, err := leveldb.OpenFile(path, options)
	if err != nil {
		return nil, err
	}

	return &levelDatabase{db: db}, nil
}

func (kv *levelDatabase) NewBatch() Batch {
	return &levelBatch{db: kv.db, batch: &leveldb.Batch{}}
}

// bytesPrefixRange returns key range that satisfy
// - the given prefix, and
// - the given seek position
func bytesPrefixRange(prefix, start []byte) *util.Range {
	r := util.BytesPrefix(prefix)
	r.Start = append(r.Start, start...)

	return r
}

func (kv *levelDatabase) NewIterator(prefix, start []byte) Iterator {
	return kv.db.NewIterator(bytesPrefixRange(prefix, start), nil)
}

// Set sets the key-value pair in leveldb storage
func (kv *levelDatabase) Set(p []byte, v []byte) error {
	return kv.db.Put(p, v, nil)
}

func (kv *levelDatabase) Delete(p []byte) error {
	return kv.db.Delete(p, nil)
}

func (kv *levelDatabase) Has(p []byte) (bool, error) {
	return kv.db.Has(p, nil)
}

// Get retrieves the key-value pair in leveldb storage
func (kv *levelDatabase) Get(p []byte) ([]byte, bool, error) {
	data, err := kv.db.Get(p, nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, false, nil
		} else if errors.Is(err, leveldb.ErrClosed) {
			return nil, false, err
		}

		return nil, false, err
	}

	return data, true, nil
}

// Close closes the leveldb storage instance
func (kv *levelDatabase) Close() error {
	return kv.db.Close()
}

func max(a, b int) int {
	if a > b {
		return a
	}

	return b
}
