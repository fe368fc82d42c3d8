package collision

import "github.com/pushon/game/internal/geom"

// Layer is a bitflag over the fixed set of collision categories.
// An entity carries two of them: the layer it IS, and the mask of
// layers it WANTS to collide with.
type Layer uint32

const (
	LayerNone          Layer = 0
	LayerPlayer1       Layer = 1 << 0
	LayerPlayer2       Layer = 1 << 1
	LayerPlayer3       Layer = 1 << 2
	LayerPlayer4       Layer = 1 << 3
	LayerEnemy         Layer = 1 << 4
	LayerPlayerAttack  Layer = 1 << 5 // bullets, swings from players
	LayerEnemyAttack   Layer = 1 << 6 // bullets, swings from enemies
	LayerNeutralHazard Layer = 1 << 7 // environmental damage, hits everyone
	LayerPickup        Layer = 1 << 8

	LayerAllPlayers = LayerPlayer1 | LayerPlayer2 | LayerPlayer3 | LayerPlayer4
	LayerAll        = Layer(0xFFFFFFFF)
)

// MaxPlayers is the number of per-player layer bits.
const MaxPlayers = 4

// PlayerLayer returns the layer bit for player n (0-based).
func PlayerLayer(n int) Layer {
	return Layer(1) << uint(n)
}

func (l Layer) Has(other Layer) bool { return l&other != 0 }

var layerNames = [...]string{
	"player1", "player2", "player3", "player4",
	"enemy", "player_attack", "enemy_attack", "neutral_hazard", "pickup",
}

func (l Layer) String() string {
	switch l {
	case LayerNone:
		return "none"
	case LayerAll:
		return "all"
	case LayerAllPlayers:
		return "all_players"
	}
	s := ""
	for i, name := range layerNames {
		if l&(1<<uint(i)) != 0 {
			if s != "" {
				s += "|"
			}
			s += name
		}
	}
	if s == "" {
		return "custom"
	}
	return s
}

// Accepts reports whether two filters allow a collision. Both masks must
// accept the other's layer; a one-sided match is not a collision.
func Accepts(aLayer, aMask, bLayer, bMask Layer) bool {
	return aMask&bLayer != 0 && bMask&aLayer != 0
}

// Overlaps is the narrow-phase circle test: squared center distance strictly
// below the squared radius sum. No square root.
func Overlaps(aPos geom.Vec2, aRadius float32, bPos geom.Vec2, bRadius float32) bool {
	dx := aPos.X - bPos.X
	dy := aPos.Y - bPos.Y
	sum := aRadius + bRadius
	return dx*dx+dy*dy < sum*sum
}
