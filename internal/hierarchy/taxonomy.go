package hierarchy

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed taxonomy.yaml
var defaultTaxonomy []byte

type taxonomyFile struct {
	Categories []JobCategory `yaml:"categories"`
}

// DefaultJobTree is the built-in job taxonomy.
func DefaultJobTree() (JobTree, error) {
	return ParseTaxonomy(defaultTaxonomy)
}

// ParseTaxonomy reads a taxonomy document. Category ids must be unique, and
// subcategory ids unique within their category.
func ParseTaxonomy(data []byte) (JobTree, error) {
	var f taxonomyFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse taxonomy: %w", err)
	}

	tree := make(JobTree, 0, len(f.Categories))
	seen := map[string]struct{}{}
	for i, c := range f.Categories {
		c.ID = strings.TrimSpace(c.ID)
		c.Name = strings.TrimSpace(c.Name)
		if c.ID == "" || c.Name == "" {
			return nil, fmt.Errorf("taxonomy category %d: id and name are required", i)
		}
		if _, dup := seen[c.ID]; dup {
			return nil, fmt.Errorf("taxonomy category %q: duplicate id", c.ID)
		}
		seen[c.ID] = struct{}{}

		children := make([]JobSubcategory, 0, len(c.Children))
		subSeen := map[string]struct{}{}
		for j, s := range c.Children {
			s.ID = strings.TrimSpace(s.ID)
			s.Name = strings.TrimSpace(s.Name)
			if s.ID == "" || s.Name == "" {
				return nil, fmt.Errorf("taxonomy category %q child %d: id and name are required", c.ID, j)
			}
			if _, dup := subSeen[s.ID]; dup {
				return nil, fmt.Errorf("taxonomy category %q child %q: duplicate id", c.ID, s.ID)
			}
			subSeen[s.ID] = struct{}{}
			children = append(children, s)
		}
		c.Children = children
		tree = append(tree, c)
	}
	return tree, nil
}
