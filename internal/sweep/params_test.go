package sweep

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGameParamsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		params  GameParams
		wantErr bool
	}{
		{"9x9(10)", GameParams{9, 9, 10}, false},
		{"16x16(40)", GameParams{16, 16, 40}, false},
		{"30x16(99)", GameParams{30, 16, 99}, false},
		{"1x1(0)", GameParams{1, 1, 0}, false},
		{"dense", GameParams{3, 3, 8}, false},
		{"zero width", GameParams{0, 9, 10}, true},
		{"zero height", GameParams{9, 0, 10}, true},
		{"negative width", GameParams{-1, 9, 10}, true},
		{"negative mines", GameParams{9, 9, -1}, true},
		{"full board", GameParams{3, 3, 9}, true},
		{"too many mines", GameParams{3, 3, 100}, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			err := test.params.Validate()
			if test.wantErr {
				assert.ErrorIs(t, err, ErrInvalidParams)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGameParamsInBounds(t *testing.T) {
	t.Parallel()

	p := GameParams{Width: 30, Height: 16, MineCount: 99}

	assert.True(t, p.InBounds(Position{0, 0}))
	assert.True(t, p.InBounds(Position{15, 29}))
	assert.False(t, p.InBounds(Position{16, 0}))
	assert.False(t, p.InBounds(Position{0, 30}))
	assert.False(t, p.InBounds(Position{-1, 0}))
	assert.False(t, p.InBounds(Position{0, -1}))
}
