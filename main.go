package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"noa/agent"
	"noa/config"
	"noa/mcp"
	"noa/preflight"
	"noa/provider"
	"noa/storage"
	"noa/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	noPreflight := flag.Bool("no-preflight", false, "skip the direct Neo4j connectivity check")
	noAudit := flag.Bool("no-audit", false, "disable the sqlite audit log of tool invocations")
	flag.Parse()

	// Optional .env next to the binary, real environment wins.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	config.InitDebugLog(cfg.DataDir())

	if err := cfg.Validate(); err != nil {
		return err
	}

	console := ui.NewConsole()

	if *noPreflight {
		console.Info("skipping Neo4j preflight check")
	} else {
		console.Info(fmt.Sprintf("checking Neo4j at %s...", cfg.Neo4jURI))
		if err := preflight.CheckNeo4j(context.Background(), cfg.Neo4jURI, cfg.Neo4jUsername, cfg.Neo4jPassword); err != nil {
			return err
		}
	}

	transport, err := mcp.StartStdio(cfg.MCPServerPath, cfg.MCPServerArgs, cfg.ChildEnv())
	if err != nil {
		return fmt.Errorf("start MCP server %s: %w", cfg.MCPServerPath, err)
	}

	client := mcp.NewClient(transport)
	defer client.Close()

	if err := client.Initialize(context.Background()); err != nil {
		return err
	}

	rawTools, err := client.Tools()
	if err != nil {
		return err
	}
	tools := mcp.ConvertTools(rawTools)
	toolNames := make([]string, len(tools))
	for i, t := range tools {
		toolNames[i] = t.Name
	}

	baseURL := cfg.BaseURL
	if cfg.ProviderType == string(provider.ProviderTypeOllama) && baseURL == "" {
		baseURL = cfg.OllamaHost
	}
	llm, err := provider.NewProvider(provider.Config{
		Type:        provider.ProviderType(cfg.ProviderType),
		BaseURL:     baseURL,
		APIKey:      cfg.APIKey,
		Model:       cfg.DefaultModel,
		Temperature: cfg.Temperature,
	})
	if err != nil {
		return fmt.Errorf("create provider: %w", err)
	}
	if err := llm.Ping(context.Background()); err != nil {
		console.Info(fmt.Sprintf("warning: %s is not responding yet: %v", llm.Name(), err))
	}

	var invoker agent.Invoker = client
	if *noAudit {
		console.Info("audit log disabled")
	} else {
		auditLog, err := storage.NewAuditLog(cfg.DataDir())
		if err != nil {
			console.Info(fmt.Sprintf("audit log unavailable: %v", err))
		} else {
			defer auditLog.Close()
			invoker = storage.NewAuditedInvoker(client, auditLog)
		}
	}

	noa := agent.New(llm, invoker, tools, ui.AgentEvents{Console: console})

	console.Banner(llm.Model(), llm.Name(), client.ServerInfo().Name, toolNames)

	return repl(console, noa, cfg.MaxIterations)
}

// repl runs the question loop. A single Ctrl-C aborts the in-flight question
// only; a second signal, a SIGTERM, an exit keyword or EOF ends the session,
// returning so the deferred MCP shutdown runs.
func repl(console *ui.Console, noa *agent.Agent, maxIterations int) error {
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	return replLoop(console, noa, maxIterations, sigCh)
}

type promptResult struct {
	line string
	ok   bool
}

// turnSignal is what the per-turn signal watcher observed.
type turnSignal struct {
	aborted   bool // a signal cancelled the turn
	terminate bool // SIGTERM, or a second signal during the same turn
}

// replLoop is the signal-aware session loop. It is split from repl so tests
// can drive it with a plain channel instead of real process signals.
//
// Reading stdin happens on its own goroutine so a signal arriving while the
// prompt is idle still reaches the select below instead of being stranded
// behind a blocked read.
func replLoop(console *ui.Console, noa *agent.Agent, maxIterations int, sigCh chan os.Signal) error {
	prompts := make(chan struct{})
	lines := make(chan promptResult, 1)
	go func() {
		for range prompts {
			line, ok := console.ReadLine()
			lines <- promptResult{line: line, ok: ok}
			if !ok {
				return
			}
		}
	}()
	defer close(prompts)

	for {
		prompts <- struct{}{}

		var input promptResult
		promptSignals := 0
	waitInput:
		for {
			select {
			case sig := <-sigCh:
				if sig == syscall.SIGTERM || promptSignals > 0 {
					console.Info("shutting down")
					return nil
				}
				promptSignals++
				console.Info(`press Ctrl-C again or type "exit" to leave`)
			case input = <-lines:
				break waitInput
			}
		}
		if !input.ok {
			console.Info("goodbye")
			return nil
		}
		line := input.line
		if line == "" {
			continue
		}

		console.UserPanel(line)

		turnCtx, cancel := context.WithCancel(context.Background())
		turnDone := make(chan struct{})
		watcherDone := make(chan turnSignal, 1)
		go func() {
			var report turnSignal
			defer func() { watcherDone <- report }()
			select {
			case sig := <-sigCh:
				report.aborted = true
				report.terminate = sig == syscall.SIGTERM
				cancel()
				select {
				case <-sigCh:
					report.terminate = true
				case <-turnDone:
				}
			case <-turnDone:
			}
		}()

		answer, err := noa.Chat(turnCtx, line, maxIterations)
		close(turnDone)
		cancel()
		report := <-watcherDone

		if report.aborted {
			console.Interrupted()
			if report.terminate {
				console.Info("shutting down")
				return nil
			}
			continue
		}

		if err != nil {
			if errors.Is(err, mcp.ErrTransportClosed) || errors.Is(err, mcp.ErrProtocol) {
				console.Error(err)
				return fmt.Errorf("MCP session lost: %w", err)
			}
			console.Error(err)
			continue
		}

		console.Answer(answer)
	}
}
