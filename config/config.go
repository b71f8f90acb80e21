package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

type SystemConfig struct {
	DataDirectory string `toml:"data_directory"`
}

type OllamaConfig struct {
	Host         string `toml:"host"`
	DefaultModel string `toml:"default_model"`
}

type ProviderConfig struct {
	Type      string `toml:"type"`
	BaseURL   string `toml:"base_url,omitempty"`
	APIKeyEnv string `toml:"api_key_env,omitempty"`
}

type Neo4jConfig struct {
	URI      string `toml:"uri"`
	Username string `toml:"username"`
	Database string `toml:"database"`
}

type MCPConfig struct {
	ServerPath string   `toml:"server_path"`
	ServerArgs []string `toml:"server_args,omitempty"`
}

type AgentConfig struct {
	MaxIterations int     `toml:"max_iterations"`
	Temperature   float64 `toml:"temperature"`
}

type UserConfig struct {
	Ollama   OllamaConfig   `toml:"ollama"`
	Provider ProviderConfig `toml:"provider"`
	Neo4j    Neo4jConfig    `toml:"neo4j"`
	MCP      MCPConfig      `toml:"mcp"`
	Agent    AgentConfig    `toml:"agent"`
}

// Config is the fully resolved runtime configuration: system config, user
// config and environment overrides merged. The Neo4j password is deliberately
// absent from the TOML layer; it only ever enters through the environment.
type Config struct {
	DataDirectory string

	OllamaHost   string
	DefaultModel string

	ProviderType string
	BaseURL      string
	APIKey       string

	Neo4jURI      string
	Neo4jUsername string
	Neo4jPassword string
	Neo4jDatabase string

	MCPServerPath string
	MCPServerArgs []string

	MaxIterations int
	Temperature   float64
}

var Debug = false
var DebugLog *log.Logger

func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

func (c *Config) applyEnvOverrides() {
	if host := os.Getenv("NOA_OLLAMA_HOST"); host != "" {
		c.OllamaHost = host
	}
	if model := os.Getenv("NOA_OLLAMA_MODEL"); model != "" {
		c.DefaultModel = model
	}
	if dataDir := os.Getenv("NOA_DATA_DIR"); dataDir != "" {
		c.DataDirectory = dataDir
	}
	if uri := os.Getenv("NEO4J_URI"); uri != "" {
		c.Neo4jURI = uri
	}
	// NEO4J_USERNAME is what mcp-neo4j-cypher itself reads; NEO4J_USER is
	// accepted as an alias.
	if user := os.Getenv("NEO4J_USERNAME"); user != "" {
		c.Neo4jUsername = user
	} else if user := os.Getenv("NEO4J_USER"); user != "" {
		c.Neo4jUsername = user
	}
	if db := os.Getenv("NEO4J_DATABASE"); db != "" {
		c.Neo4jDatabase = db
	}
	if path := os.Getenv("MCP_SERVER_PATH"); path != "" {
		c.MCPServerPath = path
	}

	// The password never comes from TOML.
	c.Neo4jPassword = os.Getenv("NEO4J_PASSWORD")

	if c.APIKey == "" && c.ProviderType == "openai" {
		keyEnv := "OPENAI_API_KEY"
		if env := os.Getenv("NOA_API_KEY_ENV"); env != "" {
			keyEnv = env
		}
		c.APIKey = os.Getenv(keyEnv)
	}
}

// Validate checks the configuration the same way the startup path needs it:
// a password for the graph and a model to talk to.
func (c *Config) Validate() error {
	if c.Neo4jPassword == "" {
		return fmt.Errorf("NEO4J_PASSWORD is required")
	}
	if c.DefaultModel == "" {
		return fmt.Errorf("a default model is required (set NOA_OLLAMA_MODEL or config.toml)")
	}
	if c.MCPServerPath == "" {
		return fmt.Errorf("mcp server path is required (set MCP_SERVER_PATH or config.toml)")
	}
	return nil
}

// ChildEnv returns the environment for the MCP server process: the current
// process environment plus the Neo4j connection variables expected by
// mcp-neo4j-cypher. NEO4J_TRANSPORT is pinned to stdio because the transport
// owns the server's stdin/stdout.
func (c *Config) ChildEnv() []string {
	env := os.Environ()
	env = append(env,
		"NEO4J_URI="+c.Neo4jURI,
		"NEO4J_USERNAME="+c.Neo4jUsername,
		"NEO4J_PASSWORD="+c.Neo4jPassword,
		"NEO4J_DATABASE="+c.Neo4jDatabase,
		"NEO4J_TRANSPORT=stdio",
	)
	return env
}

func CheckDebug() bool {
	debug := os.Getenv("NOA_DEBUG")
	return debug == "true" || debug == "1"
}

func InitDebugLog(dataDir string) {
	if !CheckDebug() {
		return
	}

	Debug = true
	logPath := filepath.Join(dataDir, "debug.log")

	// Create debug log with secure permissions (0600 - may contain query text)
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		return
	}

	DebugLog = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)
	DebugLog.Printf("=== Debug logging started (NOA_DEBUG=%s) ===", os.Getenv("NOA_DEBUG"))
	DebugLog.Printf("Log path: %s", logPath)
}

func Load() (*Config, error) {
	cfg := &Config{
		DataDirectory: "~/.local/share/noa",
		OllamaHost:    "http://localhost:11434",
		DefaultModel:  "llama3.1:latest",
		ProviderType:  "ollama",
		Neo4jURI:      "bolt://localhost:7687",
		Neo4jUsername: "neo4j",
		Neo4jDatabase: "neo4j",
		MCPServerPath: "mcp-neo4j-cypher",
		MaxIterations: 10,
		Temperature:   0.2,
	}

	systemCfg, err := LoadSystemConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load system config: %w", err)
	}
	if systemCfg.DataDirectory != "" {
		cfg.DataDirectory = systemCfg.DataDirectory
	}

	// NOA_DATA_DIR has to win before the user config is looked up.
	if dataDir := os.Getenv("NOA_DATA_DIR"); dataDir != "" {
		cfg.DataDirectory = dataDir
	}

	dataDir := cfg.DataDir()
	userCfg, err := LoadUserConfig(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}
	cfg.applyUserConfig(userCfg)

	cfg.applyEnvOverrides()

	dataDir = cfg.DataDir()
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	// Ensure data directory has correct permissions (fix if needed)
	if err := EnsureDataDirPermissions(dataDir); err != nil {
		return nil, fmt.Errorf("failed to set data directory permissions: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyUserConfig(userCfg *UserConfig) {
	if userCfg == nil {
		return
	}
	if userCfg.Ollama.Host != "" {
		c.OllamaHost = userCfg.Ollama.Host
	}
	if userCfg.Ollama.DefaultModel != "" {
		c.DefaultModel = userCfg.Ollama.DefaultModel
	}
	if userCfg.Provider.Type != "" {
		c.ProviderType = userCfg.Provider.Type
	}
	if userCfg.Provider.BaseURL != "" {
		c.BaseURL = userCfg.Provider.BaseURL
	}
	if userCfg.Provider.APIKeyEnv != "" {
		c.APIKey = os.Getenv(userCfg.Provider.APIKeyEnv)
	}
	if userCfg.Neo4j.URI != "" {
		c.Neo4jURI = userCfg.Neo4j.URI
	}
	if userCfg.Neo4j.Username != "" {
		c.Neo4jUsername = userCfg.Neo4j.Username
	}
	if userCfg.Neo4j.Database != "" {
		c.Neo4jDatabase = userCfg.Neo4j.Database
	}
	if userCfg.MCP.ServerPath != "" {
		c.MCPServerPath = userCfg.MCP.ServerPath
	}
	if len(userCfg.MCP.ServerArgs) > 0 {
		c.MCPServerArgs = userCfg.MCP.ServerArgs
	}
	if userCfg.Agent.MaxIterations > 0 {
		c.MaxIterations = userCfg.Agent.MaxIterations
	}
	if userCfg.Agent.Temperature > 0 {
		c.Temperature = userCfg.Agent.Temperature
	}
}
