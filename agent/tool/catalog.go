package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	contractx "github.com/jirapat-a/careertalk/agent/contract"
)

const (
	ToolRecordUserDetails     = "record_user_details"
	ToolRecordUnknownQuestion = "record_unknown_question"
)

// emptyResult answers a request for a tool that is not registered. The model
// occasionally hallucinates tool names; breaking the conversation over that
// would punish the visitor, so the request resolves to a no-op.
const emptyResult = "{}"

// Handler executes one tool with the model-supplied arguments.
type Handler func(ctx context.Context, args map[string]any) (any, error)

type entry struct {
	spec    contractx.ToolSpec
	handler Handler
}

// Registry maps tool names to their spec and handler. It is built once at
// startup and passed by reference to the engine; there is no ambient lookup.
type Registry struct {
	notifier contractx.Notifier
	leads    contractx.LeadStore
	entries  []entry
	byName   map[string]Handler
}

// NewRegistry registers the two visitor-activity tools. leads may be nil,
// in which case recorded activity is only pushed, not persisted.
func NewRegistry(notifier contractx.Notifier, leads contractx.LeadStore) (*Registry, error) {
	if notifier == nil {
		return nil, fmt.Errorf("%w: notifier is required", contractx.ErrValidation)
	}

	r := &Registry{
		notifier: notifier,
		leads:    leads,
	}
	r.register(recordUserDetailsSpec(), r.recordUserDetails)
	r.register(recordUnknownQuestionSpec(), r.recordUnknownQuestion)
	return r, nil
}

func (r *Registry) register(spec contractx.ToolSpec, handler Handler) {
	if r.byName == nil {
		r.byName = make(map[string]Handler)
	}
	r.entries = append(r.entries, entry{spec: spec, handler: handler})
	r.byName[spec.Name] = handler
}

// Specs returns the registered tool specs in registration order.
func (r *Registry) Specs() []contractx.ToolSpec {
	specs := make([]contractx.ToolSpec, 0, len(r.entries))
	for _, e := range r.entries {
		specs = append(specs, e.spec)
	}
	return specs
}

// Dispatch executes every request in order and returns exactly one result
// per request, matched by id. Unknown tools yield an empty result; malformed
// argument JSON and handler failures abort the batch.
func (r *Registry) Dispatch(ctx context.Context, reqs []contractx.ToolCallRequest) ([]contractx.ToolCallResult, error) {
	results := make([]contractx.ToolCallResult, 0, len(reqs))
	for _, req := range reqs {
		handler, ok := r.byName[req.Name]
		if !ok {
			log.Warn().Str("tool", req.Name).Msg("unknown tool requested, returning empty result")
			results = append(results, contractx.ToolCallResult{
				ToolCallID: req.ID,
				Content:    emptyResult,
			})
			continue
		}

		args := map[string]any{}
		if req.Arguments != "" {
			if err := json.Unmarshal([]byte(req.Arguments), &args); err != nil {
				return nil, fmt.Errorf("%w: invalid arguments for tool=%s: %v", contractx.ErrSchemaViolation, req.Name, err)
			}
		}

		log.Info().Str("tool", req.Name).Msg("tool called")
		out, err := handler(ctx, args)
		if err != nil {
			return nil, err
		}

		content, err := json.Marshal(out)
		if err != nil {
			return nil, fmt.Errorf("marshal result for tool=%s: %w", req.Name, err)
		}

		results = append(results, contractx.ToolCallResult{
			ToolCallID: req.ID,
			Content:    string(content),
		})
	}
	return results, nil
}

func (r *Registry) recordUserDetails(ctx context.Context, args map[string]any) (any, error) {
	email := stringArg(args, "email", "")
	if email == "" {
		return nil, fmt.Errorf("%w: email is required for tool=%s", contractx.ErrValidation, ToolRecordUserDetails)
	}
	name := stringArg(args, "name", "Name not provided")
	notes := stringArg(args, "notes", "not provided")

	r.notifier.Notify(ctx, fmt.Sprintf("Recording %s with email %s and notes %s", name, email, notes))

	if r.leads != nil {
		if err := r.leads.SaveContact(ctx, email, name, notes); err != nil {
			log.Error().Err(err).Str("email", email).Msg("persist contact failed")
		}
	}

	return map[string]string{"recorded": "ok"}, nil
}

func (r *Registry) recordUnknownQuestion(ctx context.Context, args map[string]any) (any, error) {
	question := stringArg(args, "question", "")
	if question == "" {
		return nil, fmt.Errorf("%w: question is required for tool=%s", contractx.ErrValidation, ToolRecordUnknownQuestion)
	}

	r.notifier.Notify(ctx, fmt.Sprintf("Recording %s", question))

	if r.leads != nil {
		if err := r.leads.SaveUnknownQuestion(ctx, question); err != nil {
			log.Error().Err(err).Msg("persist unknown question failed")
		}
	}

	return map[string]string{"recorded": "ok"}, nil
}

func stringArg(args map[string]any, key, fallback string) string {
	raw, ok := args[key]
	if !ok {
		return fallback
	}
	value, ok := raw.(string)
	if !ok || value == "" {
		return fallback
	}
	return value
}

func recordUserDetailsSpec() contractx.ToolSpec {
	return contractx.ToolSpec{
		Name:        ToolRecordUserDetails,
		Description: "Use this tool to record that a user is interested in being in touch and provided an email address",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"email": map[string]any{
					"type":        "string",
					"description": "The email address of this user",
				},
				"name": map[string]any{
					"type":        "string",
					"description": "The user's name, if they provided it",
				},
				"notes": map[string]any{
					"type":        "string",
					"description": "Any additional information about the conversation that's worth recording to give context",
				},
			},
			"required":             []string{"email"},
			"additionalProperties": false,
		},
	}
}

func recordUnknownQuestionSpec() contractx.ToolSpec {
	return contractx.ToolSpec{
		Name:        ToolRecordUnknownQuestion,
		Description: "Always use this tool to record any question that couldn't be answered as you didn't know the answer",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{
					"type":        "string",
					"description": "The question that couldn't be answered",
				},
			},
			"required":             []string{"question"},
			"additionalProperties": false,
		},
	}
}
