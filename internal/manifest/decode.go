package manifest

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/specialistvlad/rigup/internal/graph"
	"gopkg.in/yaml.v3"
)

// SectionKey is the top-level marker that introduces the component list.
const SectionKey = "components"

const (
	keyRequires    = "requires"
	keyScript      = "script"
	keyDescription = "description"
	keyTimeout     = "timeout"
)

var yamlLineRe = regexp.MustCompile(`line (\d+)`)

// Decode parses src into components in declaration order. filename is used
// only for error messages and component positions.
func Decode(filename string, src []byte) ([]graph.Component, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, &graph.ConfigParseError{
			File: filename,
			Line: lineFromYAMLError(err),
			Msg:  "malformed manifest",
			Err:  err,
		}
	}

	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, &graph.ConfigParseError{File: filename, Line: 1, Msg: fmt.Sprintf("missing top-level %q section", SectionKey)}
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, &graph.ConfigParseError{File: filename, Line: root.Line, Msg: fmt.Sprintf("expected a top-level %q section", SectionKey)}
	}

	d := decoder{file: filename}
	var section *yaml.Node
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		if key.Value != SectionKey {
			return nil, d.errorf(key.Line, "", "unexpected top-level key %q", key.Value)
		}
		if section != nil {
			return nil, d.errorf(key.Line, "", "duplicate %q section", SectionKey)
		}
		section = resolveAlias(val)
	}
	if section == nil {
		return nil, d.errorf(root.Line, "", "missing top-level %q section", SectionKey)
	}

	return d.components(section)
}

type decoder struct {
	file string
}

func (d decoder) errorf(line int, id, format string, args ...any) error {
	return &graph.ConfigParseError{File: d.file, Line: line, ID: id, Msg: fmt.Sprintf(format, args...)}
}

func (d decoder) components(section *yaml.Node) ([]graph.Component, error) {
	if isNull(section) {
		return nil, nil
	}
	if section.Kind != yaml.MappingNode {
		return nil, d.errorf(section.Line, "", "%q must contain one nested block per component", SectionKey)
	}

	out := make([]graph.Component, 0, len(section.Content)/2)
	for i := 0; i+1 < len(section.Content); i += 2 {
		key, val := section.Content[i], resolveAlias(section.Content[i+1])
		if key.Kind != yaml.ScalarNode || strings.TrimSpace(key.Value) == "" {
			return nil, d.errorf(key.Line, "", "component id must be a non-empty name")
		}

		c, err := d.component(key, val)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (d decoder) component(key, body *yaml.Node) (graph.Component, error) {
	id := key.Value
	c := graph.Component{
		ID:     id,
		Source: graph.Position{File: d.file, Line: key.Line},
	}

	if isNull(body) {
		return c, d.errorf(key.Line, id, "component has no %q", keyScript)
	}
	if body.Kind != yaml.MappingNode {
		// Usually a nested key written at the component's indentation.
		return c, d.errorf(body.Line, id, "component body must be nested keys at a deeper indentation")
	}

	seen := make(map[string]int, 4)
	for i := 0; i+1 < len(body.Content); i += 2 {
		k, v := body.Content[i], resolveAlias(body.Content[i+1])
		if first, dup := seen[k.Value]; dup {
			return c, d.errorf(k.Line, id, "duplicate key %q, first set at line %d", k.Value, first)
		}
		seen[k.Value] = k.Line

		switch k.Value {
		case keyRequires:
			requires, err := d.requires(id, v)
			if err != nil {
				return c, err
			}
			c.Requires = requires
		case keyScript:
			s, err := d.scalar(id, k.Value, v)
			if err != nil {
				return c, err
			}
			c.Script = strings.TrimSpace(s)
		case keyDescription:
			s, err := d.scalar(id, k.Value, v)
			if err != nil {
				return c, err
			}
			c.Description = s
		case keyTimeout:
			s, err := d.scalar(id, k.Value, v)
			if err != nil {
				return c, err
			}
			timeout, err := time.ParseDuration(s)
			if err != nil || timeout <= 0 {
				return c, d.errorf(v.Line, id, "invalid timeout %q", s)
			}
			c.Timeout = timeout
		default:
			return c, d.errorf(k.Line, id, "unknown key %q", k.Value)
		}
	}

	if c.Script == "" {
		return c, d.errorf(key.Line, id, "component has no %q", keyScript)
	}
	return c, nil
}

// requires accepts a sequence of names or a single scalar holding names
// separated by commas and/or spaces.
func (d decoder) requires(id string, v *yaml.Node) ([]string, error) {
	if isNull(v) {
		return nil, nil
	}

	var names []string
	switch v.Kind {
	case yaml.SequenceNode:
		for _, item := range v.Content {
			item = resolveAlias(item)
			if item.Kind != yaml.ScalarNode {
				return nil, d.errorf(item.Line, id, "%q entries must be component names", keyRequires)
			}
			name := strings.TrimSpace(item.Value)
			if name == "" {
				return nil, d.errorf(item.Line, id, "%q contains an empty name", keyRequires)
			}
			names = append(names, name)
		}
	case yaml.ScalarNode:
		names = splitList(v.Value)
	default:
		return nil, d.errorf(v.Line, id, "%q must be a list or a comma separated value", keyRequires)
	}
	return names, nil
}

func (d decoder) scalar(id, key string, v *yaml.Node) (string, error) {
	if isNull(v) {
		return "", nil
	}
	if v.Kind != yaml.ScalarNode {
		return "", d.errorf(v.Line, id, "%q must be a single value", key)
	}
	return v.Value, nil
}

func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

func isNull(n *yaml.Node) bool {
	return n == nil || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

// lineFromYAMLError digs the line number out of a yaml.v3 error message.
func lineFromYAMLError(err error) int {
	var typeErr *yaml.TypeError
	msg := err.Error()
	if errors.As(err, &typeErr) && len(typeErr.Errors) > 0 {
		msg = typeErr.Errors[0]
	}
	m := yamlLineRe.FindStringSubmatch(msg)
	if m == nil {
		return 0
	}
	line, _ := strconv.Atoi(m[1])
	return line
}
