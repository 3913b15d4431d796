package get

import (
	"errors"

	"github.com/hashicorp/go-hclog"

	"github.com/objectledger-lab/objectledger/helper/kvdb"
	"github.com/objectledger-lab/objectledger/storage"
	"github.com/objectledger-lab/objectledger/types"
)

const (
	dataDirFlag = "data-dir"
	idFlag      = "id"
)

var errInvalidObjectID = errors.New("invalid object id")

type getParams struct {
	dataDirRaw string
	idRaw      string

	id types.ObjectID
}

func (p *getParams) validateFlags() error {
	if len(types.StringToBytes(p.idRaw)) == 0 {
		return errInvalidObjectID
	}

	p.id = types.StringToObjectID(p.idRaw)

	return nil
}

func (p *getParams) openStore() (*storage.Store, error) {
	logger := hclog.NewNullLogger()

	db, err := kvdb.NewLevelDB(logger, p.dataDirRaw, kvdb.DefaultCache, kvdb.DefaultHandles)
	if err != nil {
		return nil, err
	}

	return storage.NewStore(logger, db, nil)
}
