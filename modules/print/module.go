package print

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/rigup/internal/ctxlog"
	"github.com/specialistvlad/rigup/internal/handlers"
)

// Module implements the handlers.Module interface for this package.
type Module struct{}

// OnRunPrint writes its arguments, space separated, as one line.
func OnRunPrint(ctx context.Context, call handlers.Call) error {
	ctxlog.FromContext(ctx).Debug("Printing handler arguments.", "component", call.ID, "count", len(call.Args))

	if len(call.Args) == 0 {
		_, err := fmt.Fprintf(call.Stdout, "      %s: (no message)\n", call.ID)
		return err
	}
	_, err := fmt.Fprintf(call.Stdout, "      %s: %s\n", call.ID, strings.Join(call.Args, " "))
	return err
}

// Register registers the handler with the registry.
func (m *Module) Register(h *handlers.Handlers) {
	h.RegisterHandler("print", &handlers.RegisteredHandler{
		Description: "Print the given words.",
		Fn:          OnRunPrint,
	})
}
