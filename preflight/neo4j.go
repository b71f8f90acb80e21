// Package preflight verifies external dependencies before a session starts,
// so misconfiguration fails fast with a clear message instead of surfacing as
// opaque tool errors mid-conversation.
package preflight

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

const connectTimeout = 10 * time.Second

// CheckNeo4j connects to the database with the same credentials the MCP
// server will receive and verifies connectivity.
func CheckNeo4j(ctx context.Context, uri, username, password string) error {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return fmt.Errorf("neo4j driver: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	defer driver.Close(context.Background())

	if err := driver.VerifyConnectivity(ctx); err != nil {
		return fmt.Errorf("neo4j at %s is not reachable: %w", uri, err)
	}
	return nil
}
