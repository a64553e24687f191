package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Category is a named, ordered group of shortcuts.
//
// Documents carry categories in one of two shapes:
//
//	"Godot": [ {shortcut}, ... ]                                  (legacy)
//	"Godot": {"name": "Godot", "icon": "", "shortcuts": [ ... ]}  (extended)
//
// Both decode into this one value. Legacy records which shape to write back:
// a legacy category stays legacy on disk until it is renamed or given an icon.
type Category struct {
	Name      string
	Icon      string
	Shortcuts []Shortcut
	Legacy    bool
}

type extendedCategory struct {
	Name      string     `json:"name" yaml:"name"`
	Icon      string     `json:"icon" yaml:"icon"`
	Shortcuts []Shortcut `json:"shortcuts" yaml:"shortcuts"`
}

func (c Category) extended() extendedCategory {
	shortcuts := c.Shortcuts
	if shortcuts == nil {
		shortcuts = []Shortcut{}
	}
	return extendedCategory{Name: c.Name, Icon: c.Icon, Shortcuts: shortcuts}
}

func (c Category) wireValue() any {
	if c.Legacy {
		if c.Shortcuts == nil {
			return []Shortcut{}
		}
		return c.Shortcuts
	}
	return c.extended()
}

// Clone returns a deep copy of the category.
func (c Category) Clone() Category {
	out := c
	out.Shortcuts = cloneShortcuts(c.Shortcuts)
	return out
}

func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.wireValue())
}

func (c *Category) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*c = Category{}
		return nil
	}
	switch trimmed[0] {
	case '[':
		var shortcuts []Shortcut
		if err := json.Unmarshal(trimmed, &shortcuts); err != nil {
			return err
		}
		*c = Category{Shortcuts: shortcuts, Legacy: true}
		return nil
	case '{':
		var ext extendedCategory
		if err := json.Unmarshal(trimmed, &ext); err != nil {
			return err
		}
		*c = Category{Name: ext.Name, Icon: ext.Icon, Shortcuts: ext.Shortcuts}
		return nil
	default:
		return fmt.Errorf("category must be a list of shortcuts or an object")
	}
}

func (c *Category) decodeYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var shortcuts []Shortcut
		if err := value.Decode(&shortcuts); err != nil {
			return err
		}
		*c = Category{Shortcuts: shortcuts, Legacy: true}
		return nil
	case yaml.MappingNode:
		var ext extendedCategory
		if err := value.Decode(&ext); err != nil {
			return err
		}
		*c = Category{Name: ext.Name, Icon: ext.Icon, Shortcuts: ext.Shortcuts}
		return nil
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*c = Category{}
			return nil
		}
	}
	return fmt.Errorf("line %d: category must be a list of shortcuts or a mapping", value.Line)
}

// Categories keeps categories in document order. The map key of each entry is
// its name, so names are unique.
type Categories []Category

// Index returns the position of the named category, or -1.
func (cs Categories) Index(name string) int {
	for i := range cs {
		if cs[i].Name == name {
			return i
		}
	}
	return -1
}

// Get returns the named category.
func (cs Categories) Get(name string) (Category, bool) {
	if i := cs.Index(name); i >= 0 {
		return cs[i], true
	}
	return Category{}, false
}

// Names returns the category names in order.
func (cs Categories) Names() []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name
	}
	return out
}

func (cs Categories) Clone() Categories {
	if cs == nil {
		return nil
	}
	out := make(Categories, len(cs))
	for i, c := range cs {
		out[i] = c.Clone()
	}
	return out
}

// put inserts or replaces by key. A repeated key keeps the slot of its first
// occurrence and the value of the last, like a JSON object decoded into a map.
func (cs Categories) put(key string, c Category) Categories {
	c.Name = key
	if i := cs.Index(key); i >= 0 {
		cs[i] = c
		return cs
	}
	return append(cs, c)
}

func (cs Categories) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range cs {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(c)
		if err != nil {
			return nil, fmt.Errorf("category %q: %w", c.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (cs *Categories) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*cs = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("categories must be an object")
	}

	out := Categories{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("category %q: %w", key, err)
		}
		var c Category
		if err := c.UnmarshalJSON(raw); err != nil {
			return fmt.Errorf("category %q: %w", key, err)
		}
		out = out.put(key, c)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*cs = out
	return nil
}

func (cs Categories) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, c := range cs {
		var val yaml.Node
		if err := val.Encode(c.wireValue()); err != nil {
			return nil, fmt.Errorf("category %q: %w", c.Name, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: c.Name},
			&val,
		)
	}
	return node, nil
}

func (cs *Categories) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		*cs = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*cs = nil
			return nil
		}
	case yaml.MappingNode:
		out := Categories{}
		for i := 0; i+1 < len(value.Content); i += 2 {
			key := value.Content[i].Value
			var c Category
			if err := c.decodeYAML(value.Content[i+1]); err != nil {
				return fmt.Errorf("category %q: %w", key, err)
			}
			out = out.put(key, c)
		}
		*cs = out
		return nil
	}
	return fmt.Errorf("line %d: categories must be a mapping", value.Line)
}

// MarshalJSON writes args as an empty array rather than null.
func (s Shortcut) MarshalJSON() ([]byte, error) {
	type plain Shortcut
	p := plain(s)
	if p.Args == nil {
		p.Args = []string{}
	}
	return json.Marshal(p)
}

func (s Shortcut) MarshalYAML() (interface{}, error) {
	type plain Shortcut
	p := plain(s)
	if p.Args == nil {
		p.Args = []string{}
	}
	return p, nil
}
