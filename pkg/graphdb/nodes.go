package graphdb

import (
	"context"
	"fmt"
	"strings"
)

// CreateUserNode creates the root User node for an account. The email is
// stored lowercased; it is the key every other operation matches on.
func (c *Client) CreateUserNode(ctx context.Context, email string) error {
	session := c.writeSession(ctx)
	defer session.Close(ctx)

	query := `
		CREATE (u:User {email: $email})
		RETURN u
	`

	result, err := session.Run(ctx, query, map[string]any{
		"email": strings.ToLower(email),
	})
	if err != nil {
		return fmt.Errorf("failed to create user node: %w", classifyError(err))
	}
	if _, err := result.Consume(ctx); err != nil {
		return fmt.Errorf("failed to create user node: %w", classifyError(err))
	}

	return nil
}

// CreateDocumentNode creates a Document node owned by the user. The user
// node must already exist; if it does not, ErrNotFound is returned and
// nothing is written.
func (c *Client) CreateDocumentNode(ctx context.Context, email string, name string, container string) error {
	session := c.writeSession(ctx)
	defer session.Close(ctx)

	query := `
		MATCH (u:User {email: $email})
		CREATE (d:Document {name: $name, container: $container})
		CREATE (u)-[:OWNS]->(d)
		RETURN d
	`

	result, err := session.Run(ctx, query, map[string]any{
		"email":     strings.ToLower(email),
		"name":      name,
		"container": container,
	})
	if err != nil {
		return fmt.Errorf("failed to create document node: %w", classifyError(err))
	}
	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return fmt.Errorf("failed to create document node: %w", classifyError(err))
		}
		return fmt.Errorf("no user node for %s: %w", email, ErrNotFound)
	}

	return nil
}

// CreateContentNode creates a Content node holding one chunk of document
// text. Index is the chunk's 0-based position. The owning user and
// document must both exist or ErrNotFound is returned.
func (c *Client) CreateContentNode(ctx context.Context, email string, name string, container string, index int, text string) error {
	session := c.writeSession(ctx)
	defer session.Close(ctx)

	query := `
		MATCH (u:User {email: $email})-[:OWNS]->(d:Document {name: $name, container: $container})
		CREATE (c:Content {text: $text, index: $index})
		CREATE (d)-[:CONTAINS]->(c)
		RETURN c
	`

	result, err := session.Run(ctx, query, map[string]any{
		"email":     strings.ToLower(email),
		"name":      name,
		"container": container,
		"text":      text,
		"index":     index,
	})
	if err != nil {
		return fmt.Errorf("failed to create content node: %w", classifyError(err))
	}
	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return fmt.Errorf("failed to create content node: %w", classifyError(err))
		}
		return fmt.Errorf("no document node for %s/%s: %w", container, name, ErrNotFound)
	}

	return nil
}

// CreateEntityNode creates an Entity node mentioned by the chunk at the
// given index. Duplicate entity names get their own nodes; mentions are
// deliberately not merged. The full ancestor chain must exist or
// ErrNotFound is returned.
func (c *Client) CreateEntityNode(ctx context.Context, email string, name string, container string, index int, entity string) error {
	session := c.writeSession(ctx)
	defer session.Close(ctx)

	query := `
		MATCH (u:User {email: $email})-[:OWNS]->(d:Document {name: $name, container: $container})-[:CONTAINS]->(c:Content {index: $index})
		CREATE (e:Entity {name: $entity})
		CREATE (c)-[:MENTIONS]->(e)
		RETURN e
	`

	result, err := session.Run(ctx, query, map[string]any{
		"email":     strings.ToLower(email),
		"name":      name,
		"container": container,
		"index":     index,
		"entity":    entity,
	})
	if err != nil {
		return fmt.Errorf("failed to create entity node: %w", classifyError(err))
	}
	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return fmt.Errorf("failed to create entity node: %w", classifyError(err))
		}
		return fmt.Errorf("no content node %d for %s/%s: %w", index, container, name, ErrNotFound)
	}

	return nil
}
