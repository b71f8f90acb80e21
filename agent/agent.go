// Package agent implements the iterate-propose-act loop that turns a user
// question into tool calls against the graph and, eventually, an answer.
package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"

	globalconfig "noa/config"
	"noa/mcp"
	"noa/model"
)

// maxIterationsNotice is returned when the loop runs out of budget. It is a
// terminal notice for the user, not model output, so it never enters history.
const maxIterationsNotice = "Maximum iterations reached. Please try again with a simpler query."

// Invoker executes one tool call. *mcp.Client satisfies it.
type Invoker interface {
	Invoke(ctx context.Context, name string, arguments map[string]any) (json.RawMessage, error)
}

// Agent owns one conversation: the session-constant system prompt, the
// append-only history, and the provider and invoker that drive each turn.
// Not safe for concurrent use; one conversation is strictly sequential.
type Agent struct {
	provider  model.Provider
	invoker   Invoker
	tools     []mcp.ToolSchema
	toolNames []string
	system    string
	history   []model.Message
	events    Events
}

// New builds an agent over a discovered tool catalog. The system prompt is
// rendered once here and reused for every iteration. events may be nil.
func New(provider model.Provider, invoker Invoker, tools []mcp.ToolSchema, events Events) *Agent {
	if events == nil {
		events = NopEvents{}
	}
	names := make([]string, len(tools))
	for i, t := range tools {
		names[i] = t.Name
	}
	return &Agent{
		provider:  provider,
		invoker:   invoker,
		tools:     tools,
		toolNames: names,
		system:    BuildSystemPrompt(tools),
		events:    events,
	}
}

// History returns a copy of the conversation so far.
func (a *Agent) History() []model.Message {
	out := make([]model.Message, len(a.history))
	copy(out, a.history)
	return out
}

// SystemPrompt exposes the rendered prompt, mainly for debugging.
func (a *Agent) SystemPrompt() string {
	return a.system
}

// Chat runs one turn: the user message is appended to history, then the model
// is asked repeatedly, each reply either being a tool call (executed, result
// folded into history) or the final answer. Tool failures are recoverable and
// fed back to the model; transport and protocol failures abort the turn.
// When the iteration budget runs out a fixed notice is returned with no error.
func (a *Agent) Chat(ctx context.Context, userMessage string, maxIterations int) (string, error) {
	if maxIterations <= 0 {
		maxIterations = 10
	}

	a.history = append(a.history, model.NewMessage(model.RoleUser, userMessage))

	for iteration := 1; iteration <= maxIterations; iteration++ {
		a.events.IterationStarted(iteration, maxIterations)

		responseText, err := a.provider.Generate(ctx, a.system, a.history)
		if err != nil {
			return "", fmt.Errorf("model generation failed: %w", err)
		}

		call, ok := ParseToolCall(responseText)
		if !ok {
			final := strings.TrimSpace(responseText)
			a.history = append(a.history, model.NewMessage(model.RoleAssistant, final))
			return final, nil
		}

		a.events.ToolCallRequested(call.Name, call.Arguments)
		if fatal := a.executeTool(ctx, call); fatal != nil {
			return "", fatal
		}
	}

	return maxIterationsNotice, nil
}

// executeTool runs one tool call and folds the outcome into history. Tool
// errors become assistant-role error messages so the model can correct
// itself. The returned error is non-nil only when the session is beyond
// recovery.
func (a *Agent) executeTool(ctx context.Context, call ToolCall) error {
	if !a.knownTool(call.Name) {
		err := fmt.Errorf("unknown tool %q%s", call.Name, a.suggestTool(call.Name))
		a.recordToolError(call.Name, err)
		return nil
	}

	argsJSON, err := json.Marshal(call.Arguments)
	if err != nil {
		a.recordToolError(call.Name, fmt.Errorf("unencodable arguments: %w", err))
		return nil
	}

	result, err := a.invoker.Invoke(ctx, call.Name, call.Arguments)
	if err != nil {
		if isSessionFatal(err) {
			a.events.ToolFailed(call.Name, err)
			return err
		}
		a.recordToolError(call.Name, err)
		return nil
	}

	a.events.ToolSucceeded(call.Name, string(result))
	a.history = append(a.history,
		model.NewMessage(model.RoleAssistant, fmt.Sprintf("Tool %s called with arguments: %s", call.Name, argsJSON)),
		model.NewMessage(model.RoleUser, fmt.Sprintf("Tool %s result: %s", call.Name, result)),
	)
	return nil
}

func (a *Agent) recordToolError(tool string, err error) {
	a.events.ToolFailed(tool, err)
	if globalconfig.DebugLog != nil {
		globalconfig.DebugLog.Printf("[Agent] tool %s failed: %v", tool, err)
	}
	a.history = append(a.history,
		model.NewMessage(model.RoleAssistant, fmt.Sprintf("Error executing tool %s: %s", tool, err)),
	)
}

func (a *Agent) knownTool(name string) bool {
	for _, n := range a.toolNames {
		if n == name {
			return true
		}
	}
	return false
}

// suggestTool returns a " (did you mean ...?)" hint when the hallucinated
// name is close to a real one.
func (a *Agent) suggestTool(name string) string {
	matches := fuzzy.Find(name, a.toolNames)
	if len(matches) == 0 {
		return ""
	}
	return fmt.Sprintf(" (did you mean %q?)", a.toolNames[matches[0].Index])
}

// isSessionFatal reports whether an invocation error means the MCP session is
// gone. Everything else is folded into the conversation and retried.
func isSessionFatal(err error) bool {
	var toolErr *mcp.ToolError
	if errors.As(err, &toolErr) {
		return false
	}
	return errors.Is(err, mcp.ErrTransportClosed) ||
		errors.Is(err, mcp.ErrProtocol) ||
		errors.Is(err, mcp.ErrNotInitialized) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
