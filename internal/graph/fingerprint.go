package graph

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint returns a stable hash of the graph's content. Two graphs with
// the same components, in the same order, with the same requires, scripts and
// timeouts share a fingerprint. Descriptions and source positions are ignored.
func Fingerprint(g *Graph) string {
	d := xxhash.New()
	for _, id := range g.order {
		c := g.components[id]
		// Field separators are control characters that cannot appear in ids.
		_, _ = d.WriteString(c.ID)
		_, _ = d.WriteString("\x1e")
		_, _ = d.WriteString(strings.Join(c.Requires, "\x1f"))
		_, _ = d.WriteString("\x1e")
		_, _ = d.WriteString(c.Script)
		_, _ = d.WriteString("\x1e")
		_, _ = d.WriteString(c.Timeout.String())
		_, _ = d.WriteString("\x1d")
	}
	return fmt.Sprintf("%016x", d.Sum64())
}
