// Package hcl decodes component manifests written in HCL:
//
//	component "terminal" {
//	  requires    = ["devtools"]
//	  script      = "./install-terminal.sh --fast"
//	  description = "Terminal tooling"
//	  timeout     = "5m"
//	}
//
// It produces the same graph.Component values as the YAML-style manifest
// decoder, so both formats can be mixed in one manifest directory.
package hcl
