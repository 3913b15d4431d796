package packages

import (
	"fmt"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-multierror"

	"github.com/objectledger-lab/objectledger/types"
)

// Manifest is the declarative description of a package: its name, its
// dependencies and their source locations, plus free-form custom
// properties such as the on-chain published address.
type Manifest struct {
	Package      PackageStanza               `toml:"package"`
	Dependencies map[string]DependencyStanza `toml:"dependencies"`
}

type PackageStanza struct {
	Name    string            `toml:"name"`
	Version string            `toml:"version"`
	Custom  map[string]string `toml:"custom-properties"`
}

type DependencyStanza struct {
	Local string `toml:"local"`
}

// publishedAtProperty is the custom property naming the address a
// package was published at on-chain.
const publishedAtProperty = "published-at"

func ParseManifest(data []byte) (*Manifest, error) {
	m := &Manifest{}

	if err := toml.Unmarshal(data, m); err != nil {
		return nil, err
	}

	if m.Package.Name == "" {
		return nil, fmt.Errorf("manifest declares no package name")
	}

	return m, nil
}

// PublishedAt returns the on-chain address declared by the manifest's
// published-at custom property, if any.
func (m *Manifest) PublishedAt() (types.ObjectID, bool) {
	raw, ok := m.Package.Custom[publishedAtProperty]
	if !ok || raw == "" {
		return types.ZeroObjectID, false
	}

	return types.StringToObjectID(raw), true
}

// DependencyNames returns the manifest's dependency names in sorted
// order, so that downstream artifacts are deterministic.
func (m *Manifest) DependencyNames() []string {
	names := make([]string, 0, len(m.Dependencies))
	for name := range m.Dependencies {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// ManifestResolver loads the manifest of a named dependency.
type ManifestResolver interface {
	ResolveManifest(name string) (*Manifest, error)
}

// DependencyGraph splits a package's transitive dependencies into
// published and unpublished sets.
type DependencyGraph struct {
	Published   []string
	Unpublished []string
}

// GatherDependencies walks the dependency graph rooted at the given
// manifest. Dependency names are visited once each; the output lists
// are sorted.
func GatherDependencies(root *Manifest, resolver ManifestResolver) (*DependencyGraph, error) {
	graph := &DependencyGraph{}
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
				return fmt.Errorf("resolving dependency %q: %w", name, err)
			}

			if _, published := dep.PublishedAt(); published {
				graph.Published = append(graph.Published, name)
			} else {
				graph.Unpublished = append(graph.Unpublished, name)
			}

			if err := walk(dep); err != nil {
				return err
			}
		}

		return nil
	}

	if err := walk(root); err != nil {
		return nil, err
	}

	sort.Strings(graph.Published)
	sort.Strings(graph.Unpublished)

	return graph, nil
}

// CheckUnpublishedDependencies rejects a publish whose dependency set
// contains unpublished packages, naming each offender. Resolution is
// an operator action: either publish the dependency first or pass the
// unpublished-dependencies override.
func CheckUnpublishedDependencies(unpublished []string) error {
	var result *multierror.Error

	for _, name := range unpublished {
		result = multierror.Append(result, &types.ModulePublishFailureError{
			Reason: fmt.Sprintf(
				"package dependency %q does not specify a published address. "+
					"If this is intentional, you may use the --with-unpublished-dependencies flag to "+
					"continue publishing these dependencies as part of your package",
				name,
			),
		})
	}

	return result.ErrorOrNil()
}
