package config

func DefaultSystemConfig() *SystemConfig {
	return &SystemConfig{
		DataDirectory: "~/.local/share/noa",
	}
}

func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		Ollama: OllamaConfig{
			Host:         "http://localhost:11434",
			DefaultModel: "llama3.1:latest",
		},
		Provider: ProviderConfig{
			Type: "ollama",
		},
		Neo4j: Neo4jConfig{
			URI:      "bolt://localhost:7687",
			Username: "neo4j",
			Database: "neo4j",
		},
		MCP: MCPConfig{
			ServerPath: "mcp-neo4j-cypher",
		},
		Agent: AgentConfig{
			MaxIterations: 10,
			Temperature:   0.2,
		},
	}
}

func GenerateSystemConfigTemplate() string {
	return `# NOA System Configuration
# Location: ~/.config/noa/settings.toml
# This file uses TOML format: https://toml.io

# Directory where user config, the debug log and the audit database live
data_directory = "~/.local/share/noa"
`
}

func GenerateUserConfigTemplate() string {
	return `# NOA User Configuration
# Location: <data_directory>/config.toml
# This file uses TOML format: https://toml.io

[ollama]
# Ollama server URL
host = "http://localhost:11434"

# Model used to drive the agent loop
default_model = "llama3.1:latest"

[provider]
# Inference provider: "ollama" or "openai" (any OpenAI-compatible endpoint)
type = "ollama"

# base_url and api_key_env are only used by the openai provider
# base_url = "http://localhost:8080/v1"
# api_key_env = "OPENAI_API_KEY"

[neo4j]
# Connection settings for the graph the MCP server queries.
# The password is NEVER stored here; set NEO4J_PASSWORD in the environment
# or in a .env file next to the binary.
uri = "bolt://localhost:7687"
username = "neo4j"
database = "neo4j"

[mcp]
# Executable that speaks MCP over stdio (installed separately)
server_path = "mcp-neo4j-cypher"
# server_args = []

[agent]
# How many propose-act rounds a single question may take
max_iterations = 10

# Sampling temperature for the model
temperature = 0.2
`
}
