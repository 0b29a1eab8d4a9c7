package graphdb

import (
	"context"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Node is one graph node in a subgraph view.
type Node struct {
	ID         string         `json:"id"`
	Label      string         `json:"label"`
	Properties map[string]any `json:"properties"`
}

// Edge is one directed relationship in a subgraph view.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
	Type string `json:"type"`
}

// Graph is a renderable subgraph: deduplicated node and edge lists.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Document identifies one document owned by a user.
type Document struct {
	Name      string `json:"name"`
	Container string `json:"container"`
}

// ListDocuments returns the documents owned by the user.
func (c *Client) ListDocuments(ctx context.Context, email string) ([]Document, error) {
	session := c.readSession(ctx)
	defer session.Close(ctx)

	query := `
		MATCH (u:User {email: $email})-[:OWNS]->(d:Document)
		RETURN d.name AS name, d.container AS container
		ORDER BY name
	`

	result, err := session.Run(ctx, query, map[string]any{
		"email": strings.ToLower(email),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", classifyError(err))
	}

	docs := make([]Document, 0)
	for result.Next(ctx) {
		record := result.Record()
		docs = append(docs, Document{
			Name:      getStringFromRecord(record, "name"),
			Container: getStringFromRecord(record, "container"),
		})
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", classifyError(err))
	}

	return docs, nil
}

// Descendants returns the document node and its full descendant subgraph,
// traversed without a depth bound. ErrNotFound is returned when the
// document does not exist.
func (c *Client) Descendants(ctx context.Context, email string, name string, container string) (*Graph, error) {
	session := c.readSession(ctx)
	defer session.Close(ctx)

	params := map[string]any{
		"email":     strings.ToLower(email),
		"name":      name,
		"container": container,
	}

	nodesQuery := `
		MATCH (u:User {email: $email})-[:OWNS]->(d:Document {name: $name, container: $container})
		MATCH (d)-[*0..]->(n)
		RETURN DISTINCT elementId(n) AS id, labels(n) AS labels, properties(n) AS props
	`

	result, err := session.Run(ctx, nodesQuery, params)
	if err != nil {
		return nil, fmt.Errorf("failed to query subgraph nodes: %w", classifyError(err))
	}

	graph := &Graph{
		Nodes: make([]Node, 0),
		Edges: make([]Edge, 0),
	}
	seenNodes := make(map[string]bool)
	for result.Next(ctx) {
		record := result.Record()
		node := Node{
			ID:         getStringFromRecord(record, "id"),
			Label:      getFirstLabelFromRecord(record, "labels"),
			Properties: getPropsFromRecord(record, "props"),
		}
		if seenNodes[node.ID] {
			continue
		}
		seenNodes[node.ID] = true
		graph.Nodes = append(graph.Nodes, node)
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to query subgraph nodes: %w", classifyError(err))
	}
	if len(graph.Nodes) == 0 {
		return nil, fmt.Errorf("no document %s/%s: %w", container, name, ErrNotFound)
	}

	edgesQuery := `
		MATCH (u:User {email: $email})-[:OWNS]->(d:Document {name: $name, container: $container})
		MATCH (d)-[*0..]->(n)
		MATCH (n)-[r]->(m)
		RETURN DISTINCT elementId(n) AS from, type(r) AS type, elementId(m) AS to
	`

	result, err = session.Run(ctx, edgesQuery, params)
	if err != nil {
		return nil, fmt.Errorf("failed to query subgraph edges: %w", classifyError(err))
	}

	seenEdges := make(map[string]bool)
	for result.Next(ctx) {
		record := result.Record()
		edge := Edge{
			From: getStringFromRecord(record, "from"),
			To:   getStringFromRecord(record, "to"),
			Type: getStringFromRecord(record, "type"),
		}
		key := edge.From + "|" + edge.Type + "|" + edge.To
		if seenEdges[key] {
			continue
		}
		seenEdges[key] = true
		graph.Edges = append(graph.Edges, edge)
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to query subgraph edges: %w", classifyError(err))
	}

	return graph, nil
}

func getStringFromRecord(record *neo4j.Record, key string) string {
	value, ok := record.Get(key)
	if !ok || value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return ""
}

func getFirstLabelFromRecord(record *neo4j.Record, key string) string {
	value, ok := record.Get(key)
	if !ok || value == nil {
		return ""
	}
	if labels, ok := value.([]any); ok && len(labels) > 0 {
		if s, ok := labels[0].(string); ok {
			return s
		}
	}
	return ""
}

func getPropsFromRecord(record *neo4j.Record, key string) map[string]any {
	value, ok := record.Get(key)
	if !ok || value == nil {
		return map[string]any{}
	}
	if props, ok := value.(map[string]any); ok {
		return props
	}
	return map[string]any{}
}
