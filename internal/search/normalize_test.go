package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Volkswagen", "volkswagen"},
		{"  Land   Rover ", "land rover"},
		{"land-rover", "land rover"},
		{"Citroën", "citroen"},
		{"ŠKODA", "skoda"},
		{"Rolls-Royce", "rolls royce"},
		{"ﬁat", "fiat"},
		{"", ""},
		{" \t\n", ""},
		{"!!!", ""},
		{"Mercedes–Benz", "mercedes benz"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}
