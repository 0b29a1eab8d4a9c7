package ai

import (
	"reflect"
	"testing"
)

func TestParseEntityList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "simple list",
			input: "Alpha, Beta, Gamma",
			want:  []string{"Alpha", "Beta", "Gamma"},
		},
		{
			name:  "whitespace noise",
			input: "  Alpha ,Beta  ,  Gamma Corp ",
			want:  []string{"Alpha", "Beta", "Gamma Corp"},
		},
		{
			name:  "empty items dropped",
			input: "Alpha,, ,Beta,",
			want:  []string{"Alpha", "Beta"},
		},
		{
			name:  "single entity",
			input: "Alpha",
			want:  []string{"Alpha"},
		},
		{
			name:  "newlines inside reply",
			input: "Alpha,\nBeta,\nGamma",
			want:  []string{"Alpha", "Beta", "Gamma"},
		},
		{
			name:  "empty reply",
			input: "",
			want:  []string{},
		},
		{
			name:  "duplicates preserved",
			input: "Alpha, Alpha, Beta",
			want:  []string{"Alpha", "Alpha", "Beta"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseEntityList(tc.input)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("ParseEntityList(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}
