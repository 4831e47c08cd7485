package engine

// Kind identifies a tetromino type. It doubles as the tag stored in an
// occupied grid cell; KindNone marks an empty cell.
type Kind uint8

const (
	KindNone Kind = iota
	KindI
	KindO
	KindT
	KindS
	KindZ
	KindJ
	KindL
)

// kindCount is the number of playable kinds (KindNone excluded).
const kindCount = 7

// RotationStates is the number of orientations every tetromino has.
const RotationStates = 4

// String returns the single-letter display tag ("" for KindNone).
func (k Kind) String() string {
	if !k.Valid() {
		return ""
	}
	return catalog[k].Tag
}

// Valid reports whether k names one of the seven tetrominoes.
func (k Kind) Valid() bool {
	return k >= KindI && k <= KindL
}

// ParseKind resolves a display tag ("I", "O", ...) to its Kind.
func ParseKind(tag string) (Kind, bool) {
	for _, k := range AllKinds() {
		if catalog[k].Tag == tag {
			return k, true
		}
	}
	return KindNone, false
}

// AllKinds returns the seven playable kinds in catalog order.
func AllKinds() []Kind {
	return []Kind{KindI, KindO, KindT, KindS, KindZ, KindJ, KindL}
}

// Offset is a cell position relative to a piece's anchor.
type Offset struct {
	Row, Col int
}

// Flat returns the offset as a flat grid delta (row*Width + col).
func (o Offset) Flat() int {
	return o.Row*Width + o.Col
}

// Shape is one rotation state: the four cells a piece occupies.
type Shape [4]Offset

// Tetromino is a read-only catalog entry.
type Tetromino struct {
	Kind      Kind
	Tag       string
	Rotations [RotationStates]Shape
}

// Rotation returns the shape for rotation index r, wrapped into [0, 4).
func (t Tetromino) Rotation(r int) Shape {
	return t.Rotations[((r%RotationStates)+RotationStates)%RotationStates]
}

// Lookup returns the catalog entry for k.
func Lookup(k Kind) (Tetromino, bool) {
	if !k.Valid() {
		return Tetromino{}, false
	}
	return catalog[k], true
}

// catalog is indexed by Kind. Each successive rotation state is the previous
// one turned 90 degrees clockwise; all offsets are non-negative so a piece's
// anchor is the top-left corner of its bounding box.
var catalog = [kindCount + 1]Tetromino{
	KindI: {
		Kind: KindI,
		Tag:  "I",
		Rotations: [RotationStates]Shape{
			{{0, 1}, {1, 1}, {2, 1}, {3, 1}},
			{{1, 0}, {1, 1}, {1, 2}, {1, 3}},
			{{0, 1}, {1, 1}, {2, 1}, {3, 1}},
			{{1, 0}, {1, 1}, {1, 2}, {1, 3}},
		},
	},
	KindO: {
		Kind: KindO,
		Tag:  "O",
		Rotations: [RotationStates]Shape{
			{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
			{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
			{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
			{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
		},
	},
	KindT: {
		Kind: KindT,
		Tag:  "T",
		Rotations: [RotationStates]Shape{
			{{0, 1}, {1, 0}, {1, 1}, {1, 2}},
			{{0, 1}, {1, 1}, {1, 2}, {2, 1}},
			{{1, 0}, {1, 1}, {1, 2}, {2, 1}},
			{{0, 1}, {1, 0}, {1, 1}, {2, 1}},
		},
	},
	KindS: {
		Kind: KindS,
		Tag:  "S",
		Rotations: [RotationStates]Shape{
			{{0, 1}, {0, 2}, {1, 0}, {1, 1}},
			{{0, 1}, {1, 1}, {1, 2}, {2, 2}},
			{{1, 1}, {1, 2}, {2, 0}, {2, 1}},
			{{0, 0}, {1, 0}, {1, 1}, {2, 1}},
		},
	},
	KindZ: {
		Kind: KindZ,
		Tag:  "Z",
		Rotations: [RotationStates]Shape{
			{{0, 0}, {0, 1}, {1, 1}, {1, 2}},
			{{0, 2}, {1, 1}, {1, 2}, {2, 1}},
			{{1, 0}, {1, 1}, {2, 1}, {2, 2}},
			{{0, 1}, {1, 0}, {1, 1}, {2, 0}},
		},
	},
	KindJ: {
		Kind: KindJ,
		Tag:  "J",
		Rotations: [RotationStates]Shape{
			{{0, 0}, {1, 0}, {1, 1}, {1, 2}},
			{{0, 1}, {0, 2}, {1, 1}, {2, 1}},
			{{1, 0}, {1, 1}, {1, 2}, {2, 2}},
			{{0, 1}, {1, 1}, {2, 0}, {2, 1}},
		},
	},
	KindL: {
		Kind: KindL,
		Tag:  "L",
		Rotations: [RotationStates]Shape{
			{{0, 2}, {1, 0}, {1, 1}, {1, 2}},
			{{0, 1}, {1, 1}, {2, 1}, {2, 2}},
			{{1, 0}, {1, 1}, {1, 2}, {2, 0}},
			{{0, 0}, {0, 1}, {1, 1}, {2, 1}},
		},
	},
}
