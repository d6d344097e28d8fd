package tool

import (
	"context"
	"fmt"
	"time"

	"github.com/mcpgate/mcpgate/internal/session"
)

type echoArgs struct {
	// Message is echoed back verbatim.
	Message string `json:"message"`
}

type noteArgs struct {
	// Action selects the operation, either "set" or "get".
	Action string `json:"action"`
	// Note is the text to store when Action is "set".
	Note string `json:"note,omitempty"`
}

const noteKey = "note"

// RegisterBuiltins adds the gateway's built-in tools to the registry.
func RegisterBuiltins(r *Registry) error {
	if err := RegisterTyped(r, "echo", "Echoes back the provided message.", echo); err != nil {
		return err
	}
	if err := RegisterTyped(r, "session_note", "Stores or retrieves a note scoped to the current session.", sessionNote); err != nil {
		return err
	}
	return RegisterTyped(r, "current_time", "Returns the current server time in RFC 3339 format.", currentTime)
}

func echo(_ context.Context, args echoArgs, _ *session.Session) (string, error) {
	if args.Message == "" {
		return "", fmt.Errorf("message must not be empty")
	}
	return args.Message, nil
}

func sessionNote(_ context.Context, args noteArgs, sess *session.Session) (string, error) {
	switch args.Action {
	case "set":
		sess.Set(noteKey, args.Note)
		return "note stored", nil
	case "get":
		v, ok := sess.Get(noteKey)
		if !ok {
			return "", fmt.Errorf("no note stored in this session")
		}
		note, _ := v.(string)
		return note, nil
	default:
		return "", fmt.Errorf("unknown action: %q", args.Action)
	}
}

func currentTime(_ context.Context, _ struct{}, _ *session.Session) (string, error) {
	return time.Now().Format(time.RFC3339), nil
}
