package packages

import (
	"fmt"
	"sort"

	"github.com/dogechain-lab/fastrlp"

	"github.com/objectledger-lab/objectledger/state/stypes"
	"github.com/objectledger-lab/objectledger/types"
)

const (
	systemModuleName = "system"

	PackageTypeName    = "Package"
	UpgradeCapTypeName = "UpgradeCap"
)

// PackageObjects materializes the results of a successful publish: an
// immutable package object holding the serialized module map, and an
// address-owned capability authorizing future upgrades. Versions are
// stamped later by the effects computation.
func PackageObjects(
	sender types.Address,
	pkgID, capID types.ObjectID,
	modules []*Module,
) (*stypes.Object, *stypes.Object) {
	sorted := make([]*Module, len(modules))
	copy(sorted, modules)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	ar := &fastrlp.Arena{}
	v := ar.NewArray()

	for _, m := range sorted {
		v.Set(ar.NewBytes(EncodeModule(m)))
	}

	pkg := &stypes.Object{
		ID:      pkgID,
		Owner:   types.ImmutableOwner(),
		Type:    types.TypeTag{Module: systemModuleName, Name: PackageTypeName},
		Payload: v.MarshalTo(nil),
	}

	cap := &stypes.Object{
		ID:      capID,
		Owner:   types.AddressOwner(sender),
		Type:    types.TypeTag{Module: systemModuleName, Name: UpgradeCapTypeName},
		Payload: pkgID.Bytes(),
	}

	return pkg, cap
}

// ModuleNames decodes the module map stored in a package object's
// payload and returns the declared names in sorted order.
func ModuleNames(pkg *stypes.Object) ([]string, error) {
	p := moduleParserPool.Get()
	defer moduleParserPool.Put(p)

	v, err := p.Parse(pkg.Payload)
	if err != nil {
		return nil, err
	}

	elems, err := v.GetElems()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(elems))

	for _, e := range elems {
		blob, err := e.GetBytes(nil)
		if err != nil {
			return nil, err
		}

		m, err := ParseModule(blob)
		if err != nil {
			return nil, fmt.Errorf("package payload holds malformed module: %w", err)
		}

		names = append(names, m.Name)
	}

	sort.Strings(names)

	return names, nil
}
