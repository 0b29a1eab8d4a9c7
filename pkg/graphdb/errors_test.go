package graphdb

import (
	"errors"
	"fmt"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{
			name: "nil",
			in:   nil,
			want: nil,
		},
		{
			name: "constraint violation",
			in:   &neo4j.Neo4jError{Code: "Neo.ClientError.Schema.ConstraintValidationFailed", Msg: "node exists"},
			want: ErrConstraint,
		},
		{
			name: "wrapped constraint violation",
			in:   fmt.Errorf("run failed: %w", &neo4j.Neo4jError{Code: "Neo.ClientError.Schema.ConstraintValidationFailed", Msg: "node exists"}),
			want: ErrConstraint,
		},
		{
			name: "transport error passes through",
			in:   errors.New("connection refused"),
			want: nil, // compared by identity below
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyError(tt.in)
			if tt.want != nil {
				if !errors.Is(got, tt.want) {
					t.Fatalf("expected %v, got %v", tt.want, got)
				}
				return
			}
			if got != tt.in {
				t.Fatalf("expected error to pass through unchanged, got %v", got)
			}
		})
	}
}
