package collision

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pushon/game/internal/geom"
)

func TestAcceptsRequiresBothMasks(t *testing.T) {
	cases := []struct {
		name        string
		aMask       Layer
		bMask       Layer
		wantCollide bool
	}{
		{"both accept", LayerEnemy, LayerPlayerAttack, true},
		{"only a accepts", LayerEnemy, LayerNone, false},
		{"only b accepts", LayerNone, LayerPlayerAttack, false},
		{"neither accepts", LayerNone, LayerNone, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Accepts(LayerPlayerAttack, tc.aMask, LayerEnemy, tc.bMask)
			assert.Equal(t, tc.wantCollide, got)
			// Symmetric by construction.
			assert.Equal(t, got, Accepts(LayerEnemy, tc.bMask, LayerPlayerAttack, tc.aMask))
		})
	}
}

func TestOverlapsStrictBoundary(t *testing.T) {
	// Distance 10 == 5 + 5: touching is not colliding.
	assert.False(t, Overlaps(geom.V(0, 0), 5, geom.V(10, 0), 5))
	assert.True(t, Overlaps(geom.V(0, 0), 5, geom.V(9.99, 0), 5))
	assert.True(t, Overlaps(geom.V(0, 0), 5, geom.V(3, 0), 5))
	// Zero radii never overlap, even at the same point.
	assert.False(t, Overlaps(geom.V(1, 1), 0, geom.V(1, 1), 0))
}

func TestPlayerLayer(t *testing.T) {
	assert.Equal(t, LayerPlayer1, PlayerLayer(0))
	assert.Equal(t, LayerPlayer4, PlayerLayer(3))
	assert.True(t, LayerAllPlayers.Has(PlayerLayer(2)))
	assert.False(t, LayerAllPlayers.Has(LayerEnemy))
}

func TestLayerString(t *testing.T) {
	assert.Equal(t, "none", LayerNone.String())
	assert.Equal(t, "enemy|player_attack", (LayerEnemy | LayerPlayerAttack).String())
	assert.Equal(t, "all_players", LayerAllPlayers.String())
}
