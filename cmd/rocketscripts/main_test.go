package main

import (
	"testing"
)

func TestParseFeatures(t *testing.T) {
	tests := []struct {
		in      string
		want    []float64
		wantErr bool
	}{
		{"1.5,20,1,-1", []float64{1.5, 20, 1, -1}, false},
		{" 50, 200 ,105,1", []float64{50, 200, 105, 1}, false},
		{"1,,2", nil, true},
		{"x", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseFeatures(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseFeatures() error = %v, wantErr %v", err, tt.wantErr)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("parseFeatures() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("feature %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
