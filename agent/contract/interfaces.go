package contract

import "context"

// CompletionClient sends one turn list plus the registered tool specs to the
// completion API and returns exactly one assistant message.
type CompletionClient interface {
	Complete(ctx context.Context, turns []Turn, tools []ToolSpec) (CompletionResponse, error)
}

// Notifier is a fire-and-forget side channel to the persona's owner.
// Implementations must never fail the caller; delivery errors are logged.
type Notifier interface {
	Notify(ctx context.Context, text string)
}

// LeadStore persists visitor activity recorded by the tools.
type LeadStore interface {
	SaveContact(ctx context.Context, email, name, notes string) error
	SaveUnknownQuestion(ctx context.Context, question string) error
}

// ChatHandler is the callback contract the host UI invokes once per user
// turn. The host owns rendering and session history.
type ChatHandler func(ctx context.Context, message string, history []Turn) (string, error)
