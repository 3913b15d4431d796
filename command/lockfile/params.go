package lockfile

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/objectledger-lab/objectledger/packages"
)

const (
	packageDirFlag = "package-dir"
	lockPathFlag   = "lock-path"
)

const defaultLockFileName = "Move.lock"

var errInvalidPackageDir = errors.New("invalid package directory")

type lockfileParams struct {
	packageDirRaw string
	lockPathRaw   string

	manifest *packages.Manifest
	resolver packages.ManifestResolver
}

func (p *lockfileParams) validateFlags() error {
	info, err := os.Stat(p.packageDirRaw)
	if err != nil || !info.IsDir() {
		return errInvalidPackageDir
	}

	return nil
}

func (p *lockfileParams) initRawParams() error {
	data, err := os.ReadFile(filepath.Join(p.packageDirRaw, packages.ManifestFileName))
	if err != nil {
		return err
	}

	manifest, err := packages.ParseManifest(data)
	if err != nil {
		return err
	}

	p.manifest = manifest
	p.resolver = packages.NewDirResolver(filepath.Dir(p.packageDirRaw))

	if p.lockPathRaw == "" {
		p.lockPathRaw = filepath.Join(p.packageDirRaw, defaultLockFileName)
	}

	return nil
}
