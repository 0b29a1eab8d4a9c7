package graphdb

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Client wraps a Neo4j driver and exposes the node and traversal
// operations the ingestion pipeline needs. All writes that require an
// existing ancestor are issued as a single match-then-create statement,
// so a missing ancestor can never produce a dangling node.
type Client struct {
	driver neo4j.DriverWithContext
}

// NewClientParams contains connection configuration for creating a Client.
type NewClientParams struct {
	URI      string
	Username string
	Password string
}

// NewClient connects to Neo4j and verifies connectivity.
func NewClient(ctx context.Context, params NewClientParams) (*Client, error) {
	driver, err := neo4j.NewDriverWithContext(
		params.URI,
		neo4j.BasicAuth(params.Username, params.Password, ""),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		return nil, fmt.Errorf("failed to reach neo4j: %w", err)
	}

	return &Client{
		driver: driver,
	}, nil
}

// Close releases the underlying driver connections.
func (c *Client) Close(ctx context.Context) error {
	return c.driver.Close(ctx)
}

func (c *Client) writeSession(ctx context.Context) neo4j.SessionWithContext {
	return c.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
}

func (c *Client) readSession(ctx context.Context) neo4j.SessionWithContext {
	return c.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
}
