package task

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/shlex"
)

// HandlerPrefix marks a script that names a registered handler.
const HandlerPrefix = "handler:"

// ErrInvalidRef is returned by ParseRef for scripts that cannot be split
// into a command or handler reference.
var ErrInvalidRef = errors.New("invalid task reference")

// Ref is a typed task reference. Exactly one of Command and Handler is set.
type Ref struct {
	Command string
	Handler string
	Args    []string
	// Dir is the working directory for commands. Relative command paths are
	// resolved against it.
	Dir string
}

// IsHandler reports whether the reference names a registered handler.
func (r Ref) IsHandler() bool { return r.Handler != "" }

func (r Ref) String() string {
	head := r.Command
	if r.IsHandler() {
		head = HandlerPrefix + r.Handler
	}
	if len(r.Args) == 0 {
		return head
	}
	return head + " " + strings.Join(r.Args, " ")
}

// ParseRef splits a script into argv using shell quoting rules. The result is
// never handed to a shell: pipes, redirects and variable expansion are not
// interpreted.
func ParseRef(script string) (Ref, error) {
	words, err := shlex.Split(script)
	if err != nil {
		return Ref{}, fmt.Errorf("%w: %q: %v", ErrInvalidRef, script, err)
	}
	if len(words) == 0 {
		return Ref{}, fmt.Errorf("%w: empty script", ErrInvalidRef)
	}

	head, args := words[0], words[1:]
	if len(args) == 0 {
		args = nil
	}
	if name, ok := strings.CutPrefix(head, HandlerPrefix); ok {
		if name == "" {
			return Ref{}, fmt.Errorf("%w: %q has no handler name", ErrInvalidRef, script)
		}
		return Ref{Handler: name, Args: args}, nil
	}
	return Ref{Command: head, Args: args}, nil
}
