package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	contractx "github.com/jirapat-a/careertalk/agent/contract"
)

// Client implements contract.CompletionClient on the OpenAI chat
// completions API.
type Client struct {
	api         openai.Client
	model       string
	maxTokens   int64
	temperature float64
}

var _ contractx.CompletionClient = (*Client)(nil)

func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := []option.RequestOption{
		option.WithAPIKey(strings.TrimSpace(cfg.APIKey)),
	}
	if base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"); base != "" {
		opts = append(opts, option.WithBaseURL(base))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}

	return &Client{
		api:         openai.NewClient(opts...),
		model:       strings.TrimSpace(cfg.Model),
		maxTokens:   cfg.MaxCompletionToken,
		temperature: cfg.Temperature,
	}, nil
}

func MustNew(cfg Config) *Client {
	client, err := NewClient(cfg)
	if err != nil {
		panic(err)
	}
	return client
}

// Complete requests exactly one assistant message for the given turns.
func (c *Client) Complete(ctx context.Context, turns []contractx.Turn, tools []contractx.ToolSpec) (contractx.CompletionResponse, error) {
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(c.model),
		Messages: toMessageParams(turns),
		Tools:    toToolParams(tools),
	}
	if c.maxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(c.maxTokens)
	}
	if c.temperature >= 0 {
		params.Temperature = openai.Float(c.temperature)
	}

	completion, err := c.api.Chat.Completions.New(ctx, params)
	if err != nil {
		return contractx.CompletionResponse{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return contractx.CompletionResponse{}, fmt.Errorf("%w: completion returned no choices", contractx.ErrSchemaViolation)
	}

	msg := completion.Choices[0].Message
	resp := contractx.CompletionResponse{Content: msg.Content}
	for _, call := range msg.ToolCalls {
		resp.ToolCalls = append(resp.ToolCalls, contractx.ToolCallRequest{
			ID:        call.ID,
			Name:      call.Function.Name,
			Arguments: call.Function.Arguments,
		})
	}
	return resp, nil
}

func toMessageParams(turns []contractx.Turn) []openai.ChatCompletionMessageParamUnion {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(turns))
	for _, turn := range turns {
		switch turn.Role {
		case contractx.RoleSystem:
			msgs = append(msgs, openai.SystemMessage(turn.Content))
		case contractx.RoleUser:
			msgs = append(msgs, openai.UserMessage(turn.Content))
		case contractx.RoleAssistant:
			if len(turn.ToolCalls) == 0 {
				msgs = append(msgs, openai.AssistantMessage(turn.Content))
				continue
			}
			assistant := openai.ChatCompletionAssistantMessageParam{}
			if turn.Content != "" {
				assistant.Content.OfString = openai.String(turn.Content)
			}
			for _, call := range turn.ToolCalls {
				assistant.ToolCalls = append(assistant.ToolCalls, openai.ChatCompletionMessageToolCallParam{
					ID: call.ID,
					Function: openai.ChatCompletionMessageToolCallFunctionParam{
						Name:      call.Name,
						Arguments: call.Arguments,
					},
				})
			}
			msgs = append(msgs, openai.ChatCompletionMessageParamUnion{OfAssistant: &assistant})
		case contractx.RoleTool:
			msgs = append(msgs, openai.ToolMessage(turn.Content, turn.ToolCallID))
		}
	}
	return msgs
}

func toToolParams(tools []contractx.ToolSpec) []openai.ChatCompletionToolParam {
	params := make([]openai.ChatCompletionToolParam, 0, len(tools))
	for _, spec := range tools {
		params = append(params, openai.ChatCompletionToolParam{
			Function: openai.FunctionDefinitionParam{
				Name:        spec.Name,
				Description: openai.String(spec.Description),
				Parameters:  openai.FunctionParameters(spec.Parameters),
			},
		})
	}
	return params
}
