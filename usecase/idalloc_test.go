package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextHumanID(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		existing []string
		want     string
	}{
		{
			name:   "first id",
			prefix: "ACT",
			want:   "ACT-0001",
		},
		{
			name:     "monotonic",
			prefix:   "ACT",
			existing: []string{"ACT-0001", "ACT-0002", "ACT-0003"},
			want:     "ACT-0004",
		},
		{
			name:     "gaps do not get refilled",
			prefix:   "GOAL",
			existing: []string{"GOAL-0001", "GOAL-0007"},
			want:     "GOAL-0008",
		},
		{
			name:     "order does not matter",
			prefix:   "HAB",
			existing: []string{"HAB-0012", "HAB-0002", "HAB-0005"},
			want:     "HAB-0013",
		},
		{
			name:     "malformed suffix counts as zero",
			prefix:   "ACT",
			existing: []string{"ACT-banana", "ACT-0002"},
			want:     "ACT-0003",
		},
		{
			name:     "foreign prefixes are ignored",
			prefix:   "ACT",
			existing: []string{"GOAL-0042", "HAB-0099"},
			want:     "ACT-0001",
		},
		{
			name:     "only malformed ids",
			prefix:   "ACT",
			existing: []string{"ACT-", "ACT-x"},
			want:     "ACT-0001",
		},
		{
			name:     "beyond four digits keeps counting",
			prefix:   "ACT",
			existing: []string{"ACT-10000"},
			want:     "ACT-10001",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextHumanID(tt.prefix, tt.existing))
		})
	}
}
