package utils

import "testing"

func TestMergeLabel(t *testing.T) {
	tests := []struct {
		name     string
		existing Label
		incoming Label
		want     Label
	}{
		{
			"both present accumulate",
			Label{Value: "content", Source: "recall"},
			Label{Value: "true", Source: "filter"},
			Label{Value: "content|true", Source: "recall,filter"},
		},
		{
			"empty existing takes incoming",
			Label{},
			Label{Value: "content", Source: "recall"},
			Label{Value: "content", Source: "recall"},
		},
		{
			"empty incoming keeps existing",
			Label{Value: "content", Source: "recall"},
			Label{},
			Label{Value: "content", Source: "recall"},
		},
		{
			"missing existing source",
			Label{Value: "a"},
			Label{Value: "b", Source: "s2"},
			Label{Value: "a|b", Source: "s2"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MergeLabel(tt.existing, tt.incoming); got != tt.want {
				t.Errorf("MergeLabel = %+v, want %+v", got, tt.want)
			}
		})
	}
}
