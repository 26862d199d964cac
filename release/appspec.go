package release

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// AppSpecFile is the application specification at the root of every archive.
const AppSpecFile = "appspec.yml"

// AppSpec is a parsed application specification. The YAML node tree is kept
// so that mapping order survives lookups.
type AppSpec struct {
	root *yaml.Node
}

// ParseAppSpec parses an appspec document. An empty document yields an empty
// AppSpec.
func ParseAppSpec(data []byte) (*AppSpec, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", AppSpecFile, err)
	}
	root := &doc
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		root = doc.Content[0]
	}
	if root.Kind != 0 && root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse %s: top level is not a mapping", AppSpecFile)
	}
	return &AppSpec{root: root}, nil
}

// Lookup returns the value node stored under key at the top level.
func (a *AppSpec) Lookup(key string) (*yaml.Node, bool) {
	if a == nil || a.root == nil {
		return nil, false
	}
	return MappingValue(a.root, key)
}

// MappingValue returns the value stored under key in a mapping node.
func MappingValue(n *yaml.Node, key string) (*yaml.Node, bool) {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil, false
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			v := n.Content[i+1]
			if v.Kind == yaml.ScalarNode && v.Tag == "!!null" {
				return nil, false
			}
			return v, true
		}
	}
	return nil, false
}
