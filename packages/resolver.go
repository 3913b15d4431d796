package packages

import (
	"os"
	"path/filepath"
)

// ManifestFileName is the well-known file name of a package manifest
// inside its source directory.
const ManifestFileName = "Move.toml"

// DirResolver resolves dependency manifests from sibling directories
// under a common root, one directory per package name.
type DirResolver struct {
	root string
}

func NewDirResolver(root string) *DirResolver {
	return &DirResolver{root: root}
}

func (r *DirResolver) ResolveManifest(name string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(r.root, name, ManifestFileName))
	if err != nil {
		return nil, err
	}

	return ParseManifest(data)
}
