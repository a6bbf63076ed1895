package command

import (
	"bookrater/internal/core/port"
	"errors"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"
)

type Registry struct {
	commands map[string]port.Command
}

func (r *Registry) Register(handler port.Command) {
	if r.commands == nil {
		r.commands = make(map[string]port.Command)
	}

	log.Info().Str("handler", handler.GetCommand()).Msg("adding command handler to registry")
	r.commands[handler.GetCommand()] = handler
}

func (r *Registry) Get(command string) (port.Command, error) {
	log.Debug().Interface("command", command).Msg("fetching command handler from registry")

	if r.commands == nil {
		err := errors.New("can't fetch command, registry not initialized")
		return nil, err
	}

	handler, ok := r.commands[command]
	if !ok {
		return nil, errors.New("command not found")
	}

	return handler, nil
}

func (r *Registry) ListCommands() []string {
	keys := make([]string, len(r.commands))

	i := 0
	for k := range r.commands {
		keys[i] = k
		i++
	}

	return keys
}

// ParseCommandArgs returns everything after the command word. Any whitespace, including a
// newline, ends the command word.
func ParseCommandArgs(args string) string {
	args = strings.TrimLeftFunc(args, unicode.IsSpace)
	i := strings.IndexFunc(args, unicode.IsSpace)
	if i < 0 {
		return ""
	}

	return strings.TrimSpace(args[i:])
}

// ParseCommand returns the lowercased command word, without a trailing @botname.
func ParseCommand(args string) string {
	command := strings.Fields(args)
	if len(command) == 0 {
		return ""
	}

	name, _, _ := strings.Cut(command[0], "@")
	return strings.ToLower(name)
}
