// Package manifest decodes the indentation-scoped component manifest:
//
//	components:
//	  terminal:
//	    requires: ["devtools"]      # or: requires: devtools, fonts
//	    script: "./install-terminal.sh"
//	    description: "Terminal tooling"
//
// Decoding works on yaml.v3 nodes rather than structs so that every error can
// name the line and the component it belongs to.
package manifest
