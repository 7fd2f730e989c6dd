package xiangqi

type Player int8

const (
	Red   Player = 0
	Black Player = 1
)

func (p Player) Opponent() Player {
	if p == Red {
		return Black
	}
	return Red
}

func (p Player) String() string {
	if p == Red {
		return "red"
	}
	return "black"
}

type Winner int8

const (
	WinnerNone Winner = iota
	WinnerRed
	WinnerBlack
)

func (w Winner) String() string {
	switch w {
	case WinnerRed:
		return "red"
	case WinnerBlack:
		return "black"
	default:
		return "none"
	}
}

// WinnerOf p 这一方获胜时的 Winner
func WinnerOf(p Player) Winner {
	if p == Red {
		return WinnerRed
	}
	return WinnerBlack
}

type Kind int8

const (
	KindNone     Kind = iota
	KindGeneral       // 帅 / 将
	KindAdvisor       // 仕 / 士
	KindElephant      // 相 / 象
	KindHorse         // 马
	KindChariot       // 车
	KindCannon        // 炮
	KindSoldier       // 兵 / 卒
)

// Piece 0=空；>0 红；<0 黑；abs=Kind
type Piece int8

const (
	Empty Piece = 0

	RGeneral  Piece = Piece(KindGeneral)
	RAdvisor  Piece = Piece(KindAdvisor)
	RElephant Piece = Piece(KindElephant)
	RHorse    Piece = Piece(KindHorse)
	RChariot  Piece = Piece(KindChariot)
	RCannon   Piece = Piece(KindCannon)
	RSoldier  Piece = Piece(KindSoldier)

	BGeneral  Piece = -RGeneral
	BAdvisor  Piece = -RAdvisor
	BElephant Piece = -RElephant
	BHorse    Piece = -RHorse
	BChariot  Piece = -RChariot
	BCannon   Piece = -RCannon
	BSoldier  Piece = -RSoldier
)

func MakePiece(player Player, k Kind) Piece {
	if k <= KindNone || k > KindSoldier {
		return Empty
	}
	if player == Red {
		return Piece(k)
	}
	return -Piece(k)
}

func (p Piece) Kind() Kind {
	if p < 0 {
		return Kind(-p)
	}
	return Kind(p)
}

// Player 对空格无意义，调用前先判断 p != Empty
func (p Piece) Player() Player {
	if p < 0 {
		return Black
	}
	return Red
}

func (p Piece) IsRed() bool   { return p > 0 }
func (p Piece) IsBlack() bool { return p < 0 }

// Negate 换色
func (p Piece) Negate() Piece { return -p }

func (p Piece) String() string {
	return string(pieceToChar(p))
}

// Movement 高 8 位起点，低 8 位终点
type Movement uint16

const NoMovement Movement = 0xFFFF

func NewMovement(from, to Position) Movement {
	return Movement(uint16(from)<<8 | uint16(to))
}

func (m Movement) From() Position { return Position(m >> 8) }
func (m Movement) To() Position   { return Position(m & 0xFF) }

// Nibbles 导出走子记录用：四个 4 bit 依次是起点行、起点列、终点行、终点列
func (m Movement) Nibbles() uint16 {
	from, to := m.From(), m.To()
	return uint16(Row(from))<<12 | uint16(Col(from))<<8 | uint16(Row(to))<<4 | uint16(Col(to))
}

// MovementFromNibbles 越界的行列返回 ok=false
func MovementFromNibbles(v uint16) (Movement, bool) {
	fr, fc := int(v>>12&0xF), int(v>>8&0xF)
	tr, tc := int(v>>4&0xF), int(v&0xF)
	if !onBoard(fr, fc) || !onBoard(tr, tc) {
		return NoMovement, false
	}
	return NewMovement(Pos(fr, fc), Pos(tr, tc)), true
}

func (m Movement) String() string {
	if m == NoMovement {
		return "none"
	}
	return m.From().String() + m.To().String()
}

// MoveAction 记录一步棋，足够撤销
type MoveAction struct {
	Piece    Piece    `json:"piece"`
	From     Position `json:"from"`
	To       Position `json:"to"`
	Captured Piece    `json:"captured"`
}

func (a MoveAction) Movement() Movement { return NewMovement(a.From, a.To) }
