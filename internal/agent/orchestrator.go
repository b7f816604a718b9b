package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jaekwang-park/todo-chat-api/internal/llm"
	"github.com/jaekwang-park/todo-chat-api/internal/tool"
)

const systemPrompt = "You are a helpful todo list assistant. You can help users manage their tasks " +
	"by adding, listing, updating, completing, or deleting tasks. " +
	"Always use the available functions to perform these operations. " +
	"Be concise and friendly in your responses."

const fallbackReply = "I've processed your request."

// Turn is a prior message as the model sees it.
type Turn struct {
	Role    string
	Content string
}

type Reply struct {
	Response    string        `json:"response"`
	ToolCalls   []string      `json:"tool_calls"`
	ToolResults []tool.Result `json:"tool_results"`
}

// Orchestrator turns one user message into at most one round of tool calls
// and a natural-language reply.
type Orchestrator struct {
	llm    llm.Client
	tools  ToolCatalog
	logger *slog.Logger
}

func NewOrchestrator(client llm.Client, tools ToolCatalog, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{llm: client, tools: tools, logger: logger}
}

// ProcessMessage returns an error only when the provider call fails. Tool
// failures are folded into the reply.
func (o *Orchestrator) ProcessMessage(ctx context.Context, userID, message string, history []Turn) (Reply, error) {
	resp, err := o.llm.Complete(ctx, llm.Request{
		Messages:   buildPrompt(message, history),
		Tools:      toolDefinitions(o.tools.AllSchemas()),
		ToolChoice: "auto",
	})
	if err != nil {
		return Reply{}, fmt.Errorf("language model request failed: %w", err)
	}

	reply := Reply{ToolCalls: []string{}, ToolResults: []tool.Result{}}
	for _, call := range resp.ToolCalls {
		result := o.runToolCall(ctx, userID, call)
		reply.ToolCalls = append(reply.ToolCalls, call.Name)
		reply.ToolResults = append(reply.ToolResults, result)
	}

	reply.Response = composeReply(resp.Content, reply.ToolResults)
	return reply, nil
}

func (o *Orchestrator) runToolCall(ctx context.Context, userID string, call llm.ToolCall) tool.Result {
	args, err := tool.DecodeArguments(call.Arguments)
	if err != nil {
		o.logger.Warn("undecodable tool arguments", "tool", call.Name, "error", err)
		return tool.Failure(fmt.Sprintf("Error executing tool '%s': %v", call.Name, err))
	}
	// the model never decides whose tasks are touched
	args.UserID = userID

	result := o.tools.Execute(ctx, call.Name, args)
	o.logger.Info("tool executed", "tool", call.Name, "user_id", userID, "success", result.Success)
	return result
}

func buildPrompt(message string, history []Turn) []llm.Message {
	msgs := make([]llm.Message, 0, len(history)+2)
	msgs = append(msgs, llm.Message{Role: llm.RoleSystem, Content: systemPrompt})
	for _, t := range history {
		role := t.Role
		if role == "" {
			role = llm.RoleUser
		}
		msgs = append(msgs, llm.Message{Role: role, Content: t.Content})
	}
	return append(msgs, llm.Message{Role: llm.RoleUser, Content: message})
}

func toolDefinitions(schemas []tool.Schema) []llm.ToolDefinition {
	defs := make([]llm.ToolDefinition, 0, len(schemas))
	for _, s := range schemas {
		defs = append(defs, llm.ToolDefinition{
			Name:        string(s.Name),
			Description: s.Description,
			Parameters:  s.JSONSchema(),
		})
	}
	return defs
}

// composeReply prefers the model's own text. Otherwise it lists successful
// results before failed ones, each group in call order.
func composeReply(content string, results []tool.Result) string {
	if content != "" {
		return content
	}
	if len(results) == 0 {
		return fallbackReply
	}

	var successes, failures []string
	for _, r := range results {
		if r.Success {
			msg := r.Message
			if msg == "" {
				msg = "Operation completed successfully"
			}
			successes = append(successes, msg)
			continue
		}
		msg := r.Message
		if msg == "" {
			msg = "Operation failed"
		}
		failures = append(failures, "Error: "+msg)
	}
	return strings.Join(append(successes, failures...), " ")
}
