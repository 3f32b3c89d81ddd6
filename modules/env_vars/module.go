package env_vars

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/specialistvlad/rigup/internal/handlers"
)

// Module implements the handlers.Module interface for this package.
type Module struct{}

// OnRunRequireEnv fails unless every variable named in the arguments is set
// to a non-empty value.
func OnRunRequireEnv(ctx context.Context, call handlers.Call) error {
	var missing []string
	for _, name := range call.Args {
		if v, ok := os.LookupEnv(name); !ok || v == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Register registers the handler with the registry.
func (m *Module) Register(h *handlers.Handlers) {
	h.RegisterHandler("require-env", &handlers.RegisteredHandler{
		Description: "Fail unless the named environment variables are set.",
		Fn:          OnRunRequireEnv,
	})
}
