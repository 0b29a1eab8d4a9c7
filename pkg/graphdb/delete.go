package graphdb

import (
	"context"
	"fmt"
	"strings"
)

// DeleteDocument removes a document and every node reachable from it,
// at any depth, in one statement. Returns the number of nodes deleted.
// ErrNotFound is returned when the document does not exist.
func (c *Client) DeleteDocument(ctx context.Context, email string, name string, container string) (int, error) {
	session := c.writeSession(ctx)
	defer session.Close(ctx)

	query := `
		MATCH (u:User {email: $email})-[:OWNS]->(d:Document {name: $name, container: $container})
		OPTIONAL MATCH (d)-[*0..]->(x)
		DETACH DELETE d, x
	`

	result, err := session.Run(ctx, query, map[string]any{
		"email":     strings.ToLower(email),
		"name":      name,
		"container": container,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete document: %w", classifyError(err))
	}
	summary, err := result.Consume(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to delete document: %w", classifyError(err))
	}

	deleted := summary.Counters().NodesDeleted()
	if deleted == 0 {
		return 0, fmt.Errorf("no document %s/%s: %w", container, name, ErrNotFound)
	}

	return deleted, nil
}

// DeleteUserTree removes a user and everything the user owns, at any
// depth. Deleting an absent user is not an error; account deletion must
// stay idempotent so cleanup retries can run it again.
func (c *Client) DeleteUserTree(ctx context.Context, email string) error {
	session := c.writeSession(ctx)
	defer session.Close(ctx)

	query := `
		MATCH (u:User {email: $email})
		OPTIONAL MATCH (u)-[*0..]->(x)
		DETACH DELETE u, x
	`

	result, err := session.Run(ctx, query, map[string]any{
		"email": strings.ToLower(email),
	})
	if err != nil {
		return fmt.Errorf("failed to delete user tree: %w", classifyError(err))
	}
	if _, err := result.Consume(ctx); err != nil {
		return fmt.Errorf("failed to delete user tree: %w", classifyError(err))
	}

	return nil
}
