package grammar

type Production struct {
	Index int      `json:"index"`
	LHS   string   `json:"lhs"`
	RHS   []string `json:"rhs"`
	Text  string   `json:"text"`
}

type Item struct {
	Production int      `json:"production"`
	LHS        string   `json:"lhs"`
	RHS        []string `json:"rhs"`
	Dot        int      `json:"dot"`
	LookAhead  string   `json:"lookahead"`
}

type State struct {
	Number int     `json:"id"`
	Kernel []*Item `json:"kernel"`
	Items  []*Item `json:"items"`
}

type Transition struct {
	From   int    `json:"from"`
	Symbol string `json:"symbol"`
	To     int    `json:"to"`
}

type ConflictType string

const (
	ConflictTypeShiftReduce  = ConflictType("shift/reduce")
	ConflictTypeReduceReduce = ConflictType("reduce/reduce")
)

// Conflict describes two actions competing for one ACTION cell. Adopted is the action the
// table keeps and Discarded the one it drops.
type Conflict struct {
	Type      ConflictType `json:"type"`
	State     int          `json:"state"`
	Symbol    string       `json:"symbol"`
	Adopted   string       `json:"adopted"`
	Discarded string       `json:"discarded"`
}

type Report struct {
	AugmentedStart string                    `json:"augmented_start"`
	Productions    []*Production             `json:"productions"`
	NonTerminals   []string                  `json:"non_terminals"`
	Terminals      []string                  `json:"terminals"`
	Nullable       []string                  `json:"nullable"`
	First          map[string][]string       `json:"first"`
	Follow         map[string][]string       `json:"follow"`
	States         []*State                  `json:"states"`
	Transitions    []*Transition             `json:"transitions"`
	Action         map[int]map[string]string `json:"action"`
	GoTo           map[int]map[string]int    `json:"goto"`
	Conflicts      []*Conflict               `json:"conflicts"`
}
