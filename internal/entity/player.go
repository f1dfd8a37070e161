package entity

const (
	PlayerOneID = 1
	PlayerTwoID = 2

	KindHuman = "human"
	KindBot   = "bot"
)

// Player 1 owns the odd digits, player 2 the even ones.
var (
	OddValues  = []int{1, 3, 5, 7, 9}
	EvenValues = []int{2, 4, 6, 8}
)

type Player struct {
	ID     int
	Name   string
	Kind   string
	Pieces []int
}

func NewPlayer(id int, name, kind string) *Player {
	pool := OddValues
	if id == PlayerTwoID {
		pool = EvenValues
	}

	pieces := make([]int, len(pool))
	copy(pieces, pool)

	return &Player{
		ID:     id,
		Name:   name,
		Kind:   kind,
		Pieces: pieces,
	}
}

// OwnerOf derives a value's owner from its parity.
func OwnerOf(value int) int {
	if value%2 == 1 {
		return PlayerOneID
	}

	return PlayerTwoID
}

// OwnsParity reports whether the value belongs to the player's parity set,
// whether or not the piece is still in the remaining pool.
func (that *Player) OwnsParity(value int) bool {
	return OwnerOf(value) == that.ID
}

func (that *Player) HasPiece(value int) bool {
	for _, piece := range that.Pieces {
		if piece == value {
			return true
		}
	}

	return false
}

// TakePiece removes the value from the remaining pool. It is a no-op
// when the value is not there; availability is validated before.
func (that *Player) TakePiece(value int) {
	for i, piece := range that.Pieces {
		if piece == value {
			that.Pieces = append(that.Pieces[:i], that.Pieces[i+1:]...)
			return
		}
	}
}

func (that *Player) IsBot() bool {
	return that.Kind == KindBot
}

func (that *Player) Clone() *Player {
	pieces := make([]int, len(that.Pieces))
	copy(pieces, that.Pieces)

	return &Player{
		ID:     that.ID,
		Name:   that.Name,
		Kind:   that.Kind,
		Pieces: pieces,
	}
}
