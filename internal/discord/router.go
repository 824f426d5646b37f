package discord

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// HandlerFunc is the signature for text command handlers. args holds the
// whitespace-separated tokens after the command name.
type HandlerFunc func(s *discordgo.Session, m *discordgo.MessageCreate, args []string)

// CommandRouter dispatches prefixed chat messages to registered handlers.
// Messages without the prefix are not commands and pass through untouched.
type CommandRouter struct {
	mu       sync.RWMutex
	handlers map[string]HandlerFunc
}

// NewCommandRouter creates an empty router.
func NewCommandRouter() *CommandRouter {
	return &CommandRouter{handlers: make(map[string]HandlerFunc)}
}

// Register registers a handler for a command name (without the prefix).
func (r *CommandRouter) Register(name string, handler HandlerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = handler
}

// Commands returns the registered command names in no particular order.
func (r *CommandRouter) Commands() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	return names
}

// Dispatch routes m to its handler when the content starts with prefix,
// reporting whether the message was consumed as a command. A prefixed
// message naming no registered command is consumed silently so typos are
// not read aloud.
func (r *CommandRouter) Dispatch(s *discordgo.Session, m *discordgo.MessageCreate, prefix string) bool {
	content := strings.TrimPrefix(m.Content, prefix)
	if content == m.Content {
		return false
	}

	tokens := strings.Fields(content)
	if len(tokens) == 0 {
		return false
	}
	name := tokens[0]

	r.mu.RLock()
	handler, ok := r.handlers[name]
	r.mu.RUnlock()

	if !ok {
		slog.Debug("discord: unknown command", "name", name)
		return true
	}
	handler(s, m, tokens[1:])
	return true
}
