package objectvalidation

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseSchema reads a schema document: a YAML (or JSON) mapping from
// property name to rule, in the order the properties are checked.
//
//	id:
//	  allowed: false
//	name:
//	  type: string
//	  alwaysPresent: true
//	counter:
//	  type: number
//	  allowNull: true
//	  depends:
//	    - name
//	    - kind:
//	        state: present
//	        validate: ifValue
//	        valueToTest: metric
//
// A depends entry is either a property name, which must exist, or a mapping
// from a property name to its condition. The parsed schema is checked with
// [Schema.Check]. Every error wraps ErrSchema.
func ParseSchema(data []byte) (Schema, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSchema, err)
	}
	if len(doc.Content) == 0 {
		return Schema{}, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: line %d: expected a mapping of property names to rules", ErrSchema, root.Line)
	}

	s := make(Schema, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value
		rule, err := parseRule(root.Content[i+1])
		if err != nil {
			return nil, fmt.Errorf("%w: property %q: %w", ErrSchema, name, err)
		}
		s = append(s, Property{Name: name, Rule: rule})
	}
	if err := s.Check(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadSchemaFile reads and parses the schema document at path.
func LoadSchemaFile(path string) (Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSchema, err)
	}
	s, err := ParseSchema(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// LoadSchemaDir parses every .yaml, .yml and .json file in dir. Schemas are
// keyed by file name without extension.
func LoadSchemaDir(dir string) (map[string]Schema, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSchema, err)
	}

	schemas := map[string]Schema{}
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if e.IsDir() || (ext != ".yaml" && ext != ".yml" && ext != ".json") {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ext)
		if _, ok := schemas[name]; ok {
			return nil, fmt.Errorf("%w: schema %q is defined twice in %s", ErrSchema, name, dir)
		}
		s, err := LoadSchemaFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		schemas[name] = s
	}
	return schemas, nil
}

// SchemaNames returns the keys of schemas in sorted order.
func SchemaNames(schemas map[string]Schema) []string {
	names := make([]string, 0, len(schemas))
	for name := range schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func parseRule(n *yaml.Node) (PropertyRule, error) {
	var r PropertyRule
	if n.Kind == yaml.ScalarNode && n.Tag == "!!null" {
		return r, nil
	}
	if n.Kind != yaml.MappingNode {
		return r, fmt.Errorf("line %d: expected a mapping of facets", n.Line)
	}

	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i].Value, n.Content[i+1]
		var err error
		switch key {
		case "forbidden":
			err = value.Decode(&r.Forbidden)
		case "allowed":
			var allowed bool
			if err = value.Decode(&allowed); err == nil && !allowed {
				r.Forbidden = true
			}
		case "type":
			err = value.Decode(&r.Type)
		case "alwaysPresent":
			err = value.Decode(&r.AlwaysPresent)
		case "allowNull":
			err = value.Decode(&r.AllowNull)
		case "required":
			err = value.Decode(&r.Required)
		case "oneOf":
			err = value.Decode(&r.OneOf)
		case "allowedValues":
			err = value.Decode(&r.AllowedValues)
		case "depends":
			r.Depends, err = parseDepends(value)
		case "description":
			err = value.Decode(&r.Description)
		case "example":
			err = value.Decode(&r.Example)
		case "deprecated":
			err = value.Decode(&r.Deprecated)
		default:
			err = fmt.Errorf("line %d: unknown facet %q", value.Line, key)
		}
		if err != nil {
			return r, fmt.Errorf("%s: %w", key, err)
		}
	}
	return r, nil
}

func parseDepends(n *yaml.Node) ([]Dependency, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return []Dependency{Exists(n.Value)}, nil
	case yaml.SequenceNode:
	default:
		return nil, fmt.Errorf("line %d: expected a property name or a list", n.Line)
	}

	var deps []Dependency
	for _, item := range n.Content {
		switch item.Kind {
		case yaml.ScalarNode:
			deps = append(deps, Exists(item.Value))
		case yaml.MappingNode:
			for i := 0; i+1 < len(item.Content); i += 2 {
				d, err := parseDependency(item.Content[i].Value, item.Content[i+1])
				if err != nil {
					return nil, err
				}
				deps = append(deps, d)
			}
		default:
			return nil, fmt.Errorf("line %d: expected a property name or a condition", item.Line)
		}
	}
	return deps, nil
}

type dependencyDocument struct {
	State          string    `yaml:"state"`
	Validate       string    `yaml:"validate"`
	ValueToTest    yaml.Node `yaml:"valueToTest"`
	PropertyToTest string    `yaml:"propertyToTest"`
}

func parseDependency(name string, n *yaml.Node) (Dependency, error) {
	var doc dependencyDocument
	if err := n.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	switch doc.State {
	case "absent":
		return Absent(name), nil
	case "present", "":
	default:
		return nil, fmt.Errorf("%s: line %d: unknown state %q", name, n.Line, doc.State)
	}

	var equal bool
	switch doc.Validate {
	case "":
		return Exists(name), nil
	case "ifValue":
		equal = true
	case "ifNotValue":
	default:
		return nil, fmt.Errorf("%s: line %d: unknown validate %q", name, n.Line, doc.Validate)
	}

	if doc.PropertyToTest != "" {
		if equal {
			return EqualsProperty(name, doc.PropertyToTest), nil
		}
		return NotEqualsProperty(name, doc.PropertyToTest), nil
	}
	if doc.ValueToTest.Kind == 0 {
		return nil, fmt.Errorf("%s: line %d: %s needs valueToTest or propertyToTest", name, n.Line, doc.Validate)
	}

	var value any
	if err := doc.ValueToTest.Decode(&value); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if equal {
		return Equals(name, value), nil
	}
	return NotEquals(name, value), nil
}
