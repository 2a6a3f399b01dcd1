package leave

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemaining(t *testing.T) {
	tests := []struct {
		name      string
		allowance int
		taken     int
		want      int
	}{
		{"nothing taken", 7, 0, 7},
		{"partially taken", 7, 3, 4},
		{"fully taken", 7, 7, 0},
		{"over-taken floors at zero", 7, 9, 0},
		{"zero allowance", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Remaining(tt.allowance, tt.taken))
		})
	}
}
