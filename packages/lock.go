package packages

import (
	"bytes"
	"fmt"
	"io"
	"sort"
)

// lockFileVersion is the schema version of the lock artifact.
const lockFileVersion = 0

const lockFileHeader = "# @generated by objectledger, please check-in and do not edit manually.\n"

// LockDependency is one name entry in a dependency list.
type LockDependency struct {
	Name string
}

// LockPackage pins one resolved package: its name, where its source
// came from, and its own dependency names.
type LockPackage struct {
	Name         string
	Source       string
	Dependencies []LockDependency
}

// LockFile is the reproducible-build artifact: given the same resolved
// manifests it always serializes byte-identically.
type LockFile struct {
	Version      int
	Dependencies []LockDependency
	Packages     []LockPackage
}

// BuildLockFile assembles a lock file from the root manifest and the
// resolver used during dependency gathering. Package entries are
// sorted by name; dependency lists are sorted within each entry.
func BuildLockFile(root *Manifest, resolver ManifestResolver) (*LockFile, error) {
	lock := &LockFile{Version: lockFileVersion}

	for _, name := range root.DependencyNames() {
		lock.Dependencies = append(lock.Dependencies, LockDependency{Name: name})
	}

	visited := make(map[string]struct{})

	var walk func(m *Manifest) error

	walk = func(m *Manifest) error {
		for _, name := range m.DependencyNames() {
			if _, ok := visited[name]; ok {
				continue
			}

			visited[name] = struct{}{}

			dep, err := resolver.ResolveManifest(name)
			if err != nil {
				return err
			}

			entry := LockPackage{
				Name:   name,
				Source: m.Dependencies[name].Local,
			}

			for _, sub := range dep.DependencyNames() {
				entry.Dependencies = append(entry.Dependencies, LockDependency{Name: sub})
			}

			lock.Packages = append(lock.Packages, entry)

			if err := walk(dep); err != nil {
				return err
			}
		}

		return nil
	}

	if err := walk(root); err != nil {
		return nil, err
	}

	sort.Slice(lock.Packages, func(i, j int) bool {
		return lock.Packages[i].Name < lock.Packages[j].Name
	})

	return lock, nil
}

// Encode writes the lock file in its canonical TOML layout. The layout
// is fixed by hand rather than delegated to a marshaller so that the
// artifact stays stable across library upgrades.
func (l *LockFile) Encode(w io.Writer) error {
	var buf bytes.Buffer

	buf.WriteString(lockFileHeader)
	buf.WriteString("\n[move]\n")
	fmt.Fprintf(&buf, "version = %d\n", l.Version)

	writeDependencyList(&buf, l.Dependencies)

	for _, pkg := range l.Packages {
		buf.WriteString("\n[[move.package]]\n")
		fmt.Fprintf(&buf, "name = %q\n", pkg.Name)

		if pkg.Source != "" {
			fmt.Fprintf(&buf, "source = { local = %q }\n", pkg.Source)
		}

		writeDependencyList(&buf, pkg.Dependencies)
	}

	_, err := w.Write(buf.Bytes())

	return err
}

func writeDependencyList(buf *bytes.Buffer, deps []LockDependency) {
	if len(deps) == 0 {
		return
	}

	buf.WriteString("\ndependencies = [\n")

	for _, d := range deps {
		fmt.Fprintf(buf, "  { name = %q },\n", d.Name)
	}

	buf.WriteString("]\n")
}
