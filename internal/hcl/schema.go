package hcl

import "github.com/hashicorp/hcl/v2"

const blockComponent = "component"

var fileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: blockComponent, LabelNames: []string{"id"}},
	},
}

// componentBody is the gohcl target for the inside of a component block.
type componentBody struct {
	Requires    hcl.Expression `hcl:"requires,optional"`
	Script      string         `hcl:"script"`
	Description string         `hcl:"description,optional"`
	Timeout     string         `hcl:"timeout,optional"`
}
