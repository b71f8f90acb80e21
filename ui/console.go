// Package ui renders the line-oriented console: boxed user and agent panels,
// tool activity as it happens, and final answers as terminal markdown.
package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	markdown "github.com/MichaelMure/go-term-markdown"
)

// resultPreviewLimit caps how much of a tool result is echoed to the screen.
// The full result still reaches the model and the audit log.
const resultPreviewLimit = 800

const defaultWidth = 100

// exitKeywords end the session when typed alone.
var exitKeywords = map[string]bool{
	"exit": true,
	"quit": true,
	"bye":  true,
}

// Console writes the conversation to a terminal and reads user input.
type Console struct {
	out    io.Writer
	reader *bufio.Reader
	width  int
}

func NewConsole() *Console {
	return NewConsoleIO(os.Stdin, os.Stdout)
}

// NewConsoleIO builds a console over explicit streams.
func NewConsoleIO(in io.Reader, out io.Writer) *Console {
	return &Console{
		out:    out,
		reader: bufio.NewReader(in),
		width:  defaultWidth,
	}
}

// Banner prints the session header with connection facts.
func (c *Console) Banner(model, provider, serverName string, toolNames []string) {
	fmt.Fprintln(c.out, TitleStyle.Render("noa - Neo4j graph agent"))
	fmt.Fprintln(c.out, DimStyle.Render(fmt.Sprintf("model: %s (%s)  mcp server: %s", model, provider, serverName)))
	fmt.Fprintln(c.out, DimStyle.Render(fmt.Sprintf("tools: %s", strings.Join(toolNames, ", "))))
	fmt.Fprintln(c.out, DimStyle.Render(`type "exit", "quit" or "bye" to leave; Ctrl-C aborts the current question`))
	fmt.Fprintln(c.out)
}

// ReadLine prompts for the next question. It returns ok=false on EOF or when
// an exit keyword is typed; blank lines return an empty string with ok=true
// so the caller can skip them.
func (c *Console) ReadLine() (string, bool) {
	fmt.Fprint(c.out, UserStyle.Render("You> "))
	line, err := c.reader.ReadString('\n')
	if err != nil {
		if len(strings.TrimSpace(line)) == 0 {
			return "", false
		}
	}
	line = strings.TrimSpace(line)
	if exitKeywords[strings.ToLower(line)] {
		return "", false
	}
	return line, true
}

// UserPanel echoes the accepted question in a box.
func (c *Console) UserPanel(message string) {
	fmt.Fprintln(c.out, UserPanelStyle.Render(UserStyle.Render("User: ")+message))
}

// Iteration prints the loop progress line.
func (c *Console) Iteration(iteration, maxIterations int) {
	fmt.Fprintln(c.out, DimStyle.Render(fmt.Sprintf("iteration %d/%d", iteration, maxIterations)))
}

// ToolCall announces a tool invocation the model requested.
func (c *Console) ToolCall(tool string, arguments map[string]any) {
	fmt.Fprintln(c.out, ToolStyle.Render(fmt.Sprintf("tool call: %s", tool)))
	fmt.Fprintln(c.out, DimStyle.Render(fmt.Sprintf("arguments: %v", arguments)))
}

// ToolResult shows a truncated preview of a successful tool result.
func (c *Console) ToolResult(tool string, result string) {
	if len(result) > resultPreviewLimit {
		result = result[:resultPreviewLimit] + "..."
	}
	fmt.Fprintln(c.out, ResultPanelStyle.Render(result))
}

// ToolError reports a failed invocation. The loop keeps going afterwards.
func (c *Console) ToolError(tool string, err error) {
	fmt.Fprintln(c.out, ErrorStyle.Render(fmt.Sprintf("tool error: %s: %v", tool, err)))
}

// Answer renders the final response as markdown inside the answer panel.
func (c *Console) Answer(text string) {
	if strings.TrimSpace(text) == "" {
		text = "_(no text in response)_"
	}
	rendered := string(markdown.Render(text, c.width-4, 0))
	fmt.Fprintln(c.out, AnswerPanelStyle.Render(strings.TrimRight(rendered, "\n")))
	fmt.Fprintln(c.out)
}

// Error reports a turn-level failure.
func (c *Console) Error(err error) {
	fmt.Fprintln(c.out, ErrorStyle.Render(fmt.Sprintf("error: %v", err)))
}

// Info prints a dim status line.
func (c *Console) Info(msg string) {
	fmt.Fprintln(c.out, DimStyle.Render(msg))
}

// Interrupted tells the user the current question was aborted.
func (c *Console) Interrupted() {
	fmt.Fprintln(c.out, ErrorStyle.Render("interrupted, question aborted"))
}
