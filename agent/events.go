package agent

// Events receives progress notifications from a running chat turn. The
// console implements this to show iterations and tool activity; the loop
// itself stays presentation-free.
type Events interface {
	IterationStarted(iteration, maxIterations int)
	ToolCallRequested(tool string, arguments map[string]any)
	ToolSucceeded(tool string, result string)
	ToolFailed(tool string, err error)
}

// NopEvents discards every notification.
type NopEvents struct{}

func (NopEvents) IterationStarted(int, int)                {}
func (NopEvents) ToolCallRequested(string, map[string]any) {}
func (NopEvents) ToolSucceeded(string, string)             {}
func (NopEvents) ToolFailed(string, error)                 {}
