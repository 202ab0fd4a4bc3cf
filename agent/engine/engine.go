package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/jirapat-a/careertalk/agent/contract"
	personax "github.com/jirapat-a/careertalk/agent/persona"
	toolx "github.com/jirapat-a/careertalk/agent/tool"
)

const defaultMaxToolRounds = 8

type Config struct {
	MaxToolRounds int `split_words:"true" default:"8"`
}

// Engine owns the tool-calling loop: send the conversation to the completion
// API, dispatch any requested tool calls, feed the results back, and repeat
// until the model returns a plain answer.
type Engine struct {
	client        contractx.CompletionClient
	tools         *toolx.Registry
	persona       *personax.Persona
	maxToolRounds int
}

func New(client contractx.CompletionClient, tools *toolx.Registry, p *personax.Persona, cfg Config) (*Engine, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: completion client is required", contractx.ErrValidation)
	}
	if tools == nil {
		return nil, fmt.Errorf("%w: tool registry is required", contractx.ErrValidation)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: persona is required", contractx.ErrValidation)
	}

	maxRounds := cfg.MaxToolRounds
	if maxRounds <= 0 {
		maxRounds = defaultMaxToolRounds
	}

	return &Engine{
		client:        client,
		tools:         tools,
		persona:       p,
		maxToolRounds: maxRounds,
	}, nil
}

// Chat answers one user turn. history is the caller-owned sequence of prior
// turns; the engine keeps no state across invocations.
func (e *Engine) Chat(ctx context.Context, message string, history []contractx.Turn) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("%w: message is empty", contractx.ErrValidation)
	}

	turns := make([]contractx.Turn, 0, len(history)+2)
	turns = append(turns, contractx.Turn{Role: contractx.RoleSystem, Content: e.persona.SystemPrompt()})
	turns = append(turns, history...)
	turns = append(turns, contractx.Turn{Role: contractx.RoleUser, Content: message})

	specs := e.tools.Specs()

	for round := 0; ; round++ {
		resp, err := e.client.Complete(ctx, turns, specs)
		if err != nil {
			return "", fmt.Errorf("%w: %v", contractx.ErrModelInvoke, err)
		}

		if len(resp.ToolCalls) == 0 {
			return resp.Content, nil
		}
		if round >= e.maxToolRounds {
			return "", fmt.Errorf("%w: exceeded %d rounds", contractx.ErrToolRoundLimit, e.maxToolRounds)
		}

		log.Debug().Int("round", round).Int("tool_calls", len(resp.ToolCalls)).Msg("model requested tool calls")

		turns = append(turns, contractx.Turn{
			Role:      contractx.RoleAssistant,
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})

		results, err := e.tools.Dispatch(ctx, resp.ToolCalls)
		if err != nil {
			return "", err
		}
		for _, result := range results {
			turns = append(turns, contractx.Turn{
				Role:       contractx.RoleTool,
				Content:    result.Content,
				ToolCallID: result.ToolCallID,
			})
		}
	}
}

// Handler adapts the engine to the callback contract the host UI expects.
func (e *Engine) Handler() contractx.ChatHandler {
	return e.Chat
}
