// Package chat implements the travel assistant collaborator: a bounded
// conversation, a system prompt describing the journey, and a client for a
// chat completion service whose answers arrive as futures.
package chat

import (
	"fmt"
	"strings"
	"sync"

	"github.com/npillmayer/globetrip/itinerary"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'globetrip.chat'
func tracer() tracing.Trace {
	return tracing.Select("globetrip.chat")
}

// Message roles.
const (
	System    = "system"
	User      = "user"
	Assistant = "assistant"
)

// DefaultHistory is the number of messages a conversation keeps.
const DefaultHistory = 20

// Message is one turn of a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Conversation is the message history sent along with every question. It
// keeps only the most recent messages. A Conversation is safe for concurrent
// use.
type Conversation struct {
	mu      sync.Mutex
	limit   int
	history []Message
}

// NewConversation creates an empty conversation keeping at most limit
// messages. A limit < 1 selects DefaultHistory.
func NewConversation(limit int) *Conversation {
	if limit < 1 {
		limit = DefaultHistory
	}
	return &Conversation{limit: limit}
}

// Add appends a message, dropping the oldest ones beyond the limit.
func (c *Conversation) Add(role, content string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = append(c.history, Message{Role: role, Content: content})
	if n := len(c.history); n > c.limit {
		c.history = append([]Message(nil), c.history[n-c.limit:]...)
	}
}

// History returns a copy of the messages, oldest first.
func (c *Conversation) History() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	h := make([]Message, len(c.history))
	copy(h, c.history)
	return h
}

// Len returns the number of messages kept.
func (c *Conversation) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.history)
}

// Clear forgets all messages.
func (c *Conversation) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = nil
}

// SystemPrompt describes the journey to the assistant: all stops in order
// and, if the user is looking at one, the details of the current stop.
// Details are taken from a waypoint's info entries "description",
// "highlights", "foods" and "tips".
func SystemPrompt(stops []itinerary.Waypoint, current *itinerary.Waypoint) string {
	var b strings.Builder
	b.WriteString("You are an expert travel assistant helping users plan their world journey. ")
	b.WriteString("You have deep knowledge about global destinations, cultures, cuisines, and travel logistics.\n\n")
	b.WriteString("Current journey includes these destinations:\n")
	for i, w := range stops {
		fmt.Fprintf(&b, "%d. %s", i+1, w.Name)
		if d := info(w, "description"); d != "" {
			fmt.Fprintf(&b, " - %s", d)
		}
		b.WriteByte('\n')
	}
	if current != nil {
		fmt.Fprintf(&b, "\nThe user is currently viewing: %s\n", current.Name)
		if h := info(*current, "highlights"); h != "" {
			fmt.Fprintf(&b, "Key attractions: %s\n", h)
		}
		if f := info(*current, "foods"); f != "" {
			fmt.Fprintf(&b, "Local foods: %s\n", f)
		}
		if t := info(*current, "tips"); t != "" {
			fmt.Fprintf(&b, "Tips: %s\n", t)
		}
	}
	b.WriteString("\nProvide structured, professional, and helpful travel advice. ")
	b.WriteString("Focus on practical information, cultural insights, insider tips, and budget recommendations.")
	return b.String()
}

// info renders an info entry as text; lists are joined by commas.
func info(w itinerary.Waypoint, key string) string {
	v, ok := w.Info[key]
	if !ok || v == nil {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	case []string:
		return strings.Join(x, ", ")
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = fmt.Sprint(e)
		}
		return strings.Join(parts, ", ")
	}
	return fmt.Sprint(v)
}
