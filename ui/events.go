package ui

// AgentEvents adapts the console to the agent's observer hooks.
type AgentEvents struct {
	Console *Console
}

func (e AgentEvents) IterationStarted(iteration, maxIterations int) {
	e.Console.Iteration(iteration, maxIterations)
}

func (e AgentEvents) ToolCallRequested(tool string, arguments map[string]any) {
	e.Console.ToolCall(tool, arguments)
}

func (e AgentEvents) ToolSucceeded(tool string, result string) {
	e.Console.ToolResult(tool, result)
}

func (e AgentEvents) ToolFailed(tool string, err error) {
	e.Console.ToolError(tool, err)
}
