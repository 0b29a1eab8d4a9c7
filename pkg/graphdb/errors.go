package graphdb

import (
	"errors"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

var (
	// ErrNotFound is returned when a required node, or the ancestor chain
	// a write depends on, does not exist.
	ErrNotFound = errors.New("graphdb: not found")

	// ErrConstraint is returned when the store rejects a write because of
	// a schema constraint violation.
	ErrConstraint = errors.New("graphdb: constraint violation")
)

// classifyError maps driver errors onto the adapter's sentinel errors.
// Transport and other server errors pass through unchanged.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	var neoErr *neo4j.Neo4jError
	if errors.As(err, &neoErr) {
		if strings.Contains(neoErr.Code, "ConstraintValidationFailed") ||
			strings.Contains(neoErr.Code, "ConstraintViolation") {
			return ErrConstraint
		}
	}

	return err
}
