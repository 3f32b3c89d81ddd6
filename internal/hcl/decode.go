package hcl

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/rigup/internal/graph"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Decode parses an HCL manifest into components in declaration order.
func Decode(filename string, src []byte) ([]graph.Component, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diagError(filename, "", diags)
	}

	content, diags := file.Body.Content(fileSchema)
	if diags.HasErrors() {
		return nil, diagError(filename, "", diags)
	}

	out := make([]graph.Component, 0, len(content.Blocks))
	for _, block := range content.Blocks {
		c, err := decodeComponent(filename, block)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func decodeComponent(filename string, block *hcl.Block) (graph.Component, error) {
	id := block.Labels[0]
	line := block.DefRange.Start.Line
	c := graph.Component{
		ID:     id,
		Source: graph.Position{File: filename, Line: line},
	}

	var body componentBody
	if diags := gohcl.DecodeBody(block.Body, nil, &body); diags.HasErrors() {
		return c, diagError(filename, id, diags)
	}

	requires, err := decodeRequires(filename, id, body.Requires)
	if err != nil {
		return c, err
	}
	c.Requires = requires

	c.Script = strings.TrimSpace(body.Script)
	if c.Script == "" {
		return c, &graph.ConfigParseError{File: filename, Line: line, ID: id, Msg: `"script" must not be empty`}
	}
	c.Description = body.Description

	if body.Timeout != "" {
		timeout, err := time.ParseDuration(body.Timeout)
		if err != nil || timeout <= 0 {
			return c, &graph.ConfigParseError{File: filename, Line: line, ID: id, Msg: fmt.Sprintf("invalid timeout %q", body.Timeout)}
		}
		c.Timeout = timeout
	}
	return c, nil
}

// decodeRequires accepts a list of strings, or one string of names separated
// by commas and/or spaces.
func decodeRequires(filename, id string, expr hcl.Expression) ([]string, error) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diagError(filename, id, diags)
	}
	if val.IsNull() {
		return nil, nil
	}

	line := expr.Range().Start.Line
	fail := func(msg string) error {
		return &graph.ConfigParseError{File: filename, Line: line, ID: id, Msg: msg}
	}

	if val.Type() == cty.String {
		return strings.FieldsFunc(val.AsString(), func(r rune) bool {
			return r == ',' || unicode.IsSpace(r)
		}), nil
	}

	list, err := convert.Convert(val, cty.List(cty.String))
	if err != nil {
		return nil, fail(`"requires" must be a list of component names`)
	}
	if !list.IsWhollyKnown() {
		return nil, fail(`"requires" must be a static value`)
	}

	var names []string
	if err := gocty.FromCtyValue(list, &names); err != nil {
		return nil, fail(fmt.Sprintf(`"requires" is invalid: %v`, err))
	}
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			return nil, fail(`"requires" contains an empty name`)
		}
	}
	return names, nil
}

// diagError converts the first error diagnostic into a ConfigParseError.
func diagError(filename, id string, diags hcl.Diagnostics) error {
	for _, d := range diags {
		if d.Severity != hcl.DiagError {
			continue
		}
		e := &graph.ConfigParseError{File: filename, ID: id, Msg: d.Summary}
		if d.Detail != "" {
			e.Msg += ": " + d.Detail
		}
		if d.Subject != nil {
			e.Line = d.Subject.Start.Line
		}
		return e
	}
	return &graph.ConfigParseError{File: filename, ID: id, Msg: diags.Error()}
}
