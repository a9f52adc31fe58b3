package engine

// OutcomeKind names a MoveOutcome variant on the wire
type OutcomeKind string

const (
	OutcomeBlocked     OutcomeKind = "blocked"
	OutcomeWon         OutcomeKind = "won"
	OutcomeAdvanced    OutcomeKind = "advanced"
	OutcomeSnakeSlide  OutcomeKind = "snake_slide"
	OutcomeLadderClimb OutcomeKind = "ladder_climb"
)

// MoveOutcome is the classified result of resolving one roll.
// The set of variants is closed; handle them all through an OutcomeVisitor.
type MoveOutcome interface {
	Kind() OutcomeKind
	Accept(v OutcomeVisitor)
	sealed()
}

// OutcomeVisitor must handle every MoveOutcome variant
type OutcomeVisitor interface {
	VisitBlocked(o Blocked)
	VisitWon(o Won)
	VisitAdvanced(o Advanced)
	VisitSnakeSlide(o SnakeSlide)
	VisitLadderClimb(o LadderClimb)
}

// Blocked means the roll overshot the goal; the player does not move
type Blocked struct {
	Position int
	Roll     int
}

// Won means the player reached the goal, directly or by a ladder
type Won struct {
	Landed    int // tile the roll landed on before any ladder
	ViaLadder bool
}

// Advanced is a plain move onto a tile with no rule
type Advanced struct {
	To int
}

// SnakeSlide means the player landed on a snake's head and slid down
type SnakeSlide struct {
	Landed int
	To     int
}

// LadderClimb means the player landed at a ladder's foot and climbed it
type LadderClimb struct {
	Landed int
	To     int
}

func (Blocked) Kind() OutcomeKind { return OutcomeBlocked }
func (Won) Kind() OutcomeKind { return OutcomeWon }
func (Advanced) Kind() OutcomeKind { return OutcomeAdvanced }
func (SnakeSlide) Kind() OutcomeKind { return OutcomeSnakeSlide }
func (LadderClimb) Kind() OutcomeKind { return OutcomeLadderClimb }

func (o Blocked) Accept(v OutcomeVisitor) { v.VisitBlocked(o) }
func (o Won) Accept(v OutcomeVisitor) { v.VisitWon(o) }
func (o Advanced) Accept(v OutcomeVisitor) { v.VisitAdvanced(o) }
func (o SnakeSlide) Accept(v OutcomeVisitor) { v.VisitSnakeSlide(o) }
func (o LadderClimb) Accept(v OutcomeVisitor) { v.VisitLadderClimb(o) }

func (Blocked) sealed() {}
func (Won) sealed() {}
func (Advanced) sealed() {}
func (SnakeSlide) sealed() {}
func (LadderClimb) sealed() {}

// OutcomeRecord is the flat JSON form of a MoveOutcome
type OutcomeRecord struct {
	Kind        OutcomeKind `json:"kind"`
	Landed      int         `json:"landed,omitempty"`
	Destination int         `json:"destination,omitempty"`
	ViaLadder   bool        `json:"via_ladder,omitempty"`
}

type finalPosition struct {
	current int
	result  int
}

func (f *finalPosition) VisitBlocked(Blocked) { f.result = f.current }
func (f *finalPosition) VisitWon(Won) { f.result = GoalTile }
func (f *finalPosition) VisitAdvanced(o Advanced) { f.result = o.To }
func (f *finalPosition) VisitSnakeSlide(o SnakeSlide) { f.result = o.To }
func (f *finalPosition) VisitLadderClimb(o LadderClimb) { f.result = o.To }

// FinalPosition returns where a player at current ends up after outcome
func FinalPosition(outcome MoveOutcome, current int) int {
	f := &finalPosition{current: current, result: current}
	outcome.Accept(f)
	return f.result
}

type recordBuilder struct {
	rec OutcomeRecord
}

func (b *recordBuilder) VisitBlocked(o Blocked) {
	b.rec = OutcomeRecord{Kind: OutcomeBlocked}
}

func (b *recordBuilder) VisitWon(o Won) {
	b.rec = OutcomeRecord{Kind: OutcomeWon, Landed: o.Landed, Destination: GoalTile, ViaLadder: o.ViaLadder}
}

func (b *recordBuilder) VisitAdvanced(o Advanced) {
	b.rec = OutcomeRecord{Kind: OutcomeAdvanced, Landed: o.To, Destination: o.To}
}

func (b *recordBuilder) VisitSnakeSlide(o SnakeSlide) {
	b.rec = OutcomeRecord{Kind: OutcomeSnakeSlide, Landed: o.Landed, Destination: o.To}
}

func (b *recordBuilder) VisitLadderClimb(o LadderClimb) {
	b.rec = OutcomeRecord{Kind: OutcomeLadderClimb, Landed: o.Landed, Destination: o.To}
}

// DescribeOutcome flattens an outcome for JSON responses and history
func DescribeOutcome(outcome MoveOutcome) OutcomeRecord {
	b := &recordBuilder{}
	outcome.Accept(b)
	return b.rec
}
