package grammar

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/bianca-ap01/ParserLR1/grammar/symbol"
	"github.com/cnf/structhash"
)

// lrItemID is the identity of an LR(1) item: the exact (production, dot, look-ahead)
// triple. Items that differ only in their look-ahead are distinct.
type lrItemID struct {
	prod      productionNum
	dot       int
	lookAhead symbol.Symbol
}

func (id lrItemID) less(o lrItemID) bool {
	if id.prod != o.prod {
		return id.prod < o.prod
	}
	if id.dot != o.dot {
		return id.dot < o.dot
	}
	return id.lookAhead < o.lookAhead
}

type lrItem struct {
	id   lrItemID
	prod *production

	// E → E + T
	//
	// Dot | Dotted Symbol | Item
	// ----+---------------+------------
	// 0   | E             | E →・E + T
	// 1   | +             | E → E・+ T
	// 2   | T             | E → E +・T
	// 3   | Nil           | E → E + T・
	dot          int
	dottedSymbol symbol.Symbol

	// When initial is true, the LHS of the production is the augmented start symbol and dot is 0.
	// It looks like S' →・S.
	initial bool

	// When reducible is true, the item looks like E → E + T・.
	reducible bool

	// When kernel is true, the item is kernel item.
	kernel bool

	// lookAhead is a terminal symbol or EOF. A reducible item reduces only when the
	// look-ahead appears as the next input symbol.
	lookAhead symbol.Symbol
}

func newLR1Item(prod *production, dot int, lookAhead symbol.Symbol) (*lrItem, error) {
	if prod == nil {
		return nil, fmt.Errorf("production must be non-nil")
	}

	if dot < 0 || dot > prod.rhsLen {
		return nil, fmt.Errorf("dot must be between 0 and %v", prod.rhsLen)
	}

	if !lookAhead.IsTerminal() {
		return nil, fmt.Errorf("a look-ahead symbol must be a terminal symbol or EOF: %v", lookAhead)
	}

	dottedSymbol := symbol.SymbolNil
	if dot < prod.rhsLen {
		dottedSymbol = prod.rhs[dot]
	}

	initial := prod.lhs.IsStart() && dot == 0

	return &lrItem{
		id: lrItemID{
			prod:      prod.num,
			dot:       dot,
			lookAhead: lookAhead,
		},
		prod:         prod,
		dot:          dot,
		dottedSymbol: dottedSymbol,
		initial:      initial,
		reducible:    dot == prod.rhsLen,
		kernel:       initial || dot > 0,
		lookAhead:    lookAhead,
	}, nil
}

// kernelID is a digest of the sorted kernel items of a state.
type kernelID [20]byte

func (id kernelID) String() string {
	return fmt.Sprintf("%x", id[:4])
}

type kernelDigest struct {
	Items []kernelDigestItem
}

type kernelDigestItem struct {
	Production int
	Dot        int
	LookAhead  int
}

type kernel struct {
	id    kernelID
	items []*lrItem
}

// newKernel builds a kernel from kernel items. Duplicates are removed and the items are
// sorted, so two kernels holding the same triples share an ID regardless of input order.
func newKernel(items []*lrItem) (*kernel, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("a kernel need at least one item")
	}

	var sortedItems []*lrItem
	{
		m := map[lrItemID]*lrItem{}
		for _, item := range items {
			if !item.kernel {
				return nil, fmt.Errorf("not a kernel item: %v", item.id)
			}
			m[item.id] = item
		}
		sortedItems = make([]*lrItem, 0, len(m))
		for _, item := range m {
			sortedItems = append(sortedItems, item)
		}
		sort.Slice(sortedItems, func(i, j int) bool {
			return sortedItems[i].id.less(sortedItems[j].id)
		})
	}

	var id kernelID
	{
		d := kernelDigest{
			Items: make([]kernelDigestItem, len(sortedItems)),
		}
		for i, item := range sortedItems {
			d.Items[i] = kernelDigestItem{
				Production: item.id.prod.Int(),
				Dot:        item.id.dot,
				LookAhead:  int(item.id.lookAhead),
			}
		}
		copy(id[:], structhash.Sha1(d, 1))
	}

	return &kernel{
		id:    id,
		items: sortedItems,
	}, nil
}

type stateNum int

const stateNumInitial = stateNum(0)

func (n stateNum) Int() int {
	return int(n)
}

func (n stateNum) String() string {
	return strconv.Itoa(int(n))
}

func (n stateNum) next() stateNum {
	return stateNum(n + 1)
}

type lrState struct {
	*kernel
	num stateNum

	// items is the closure of the kernel in discovery order: kernel items first.
	items []*lrItem

	// next maps a symbol to the state GOTO(this state, symbol) leads to.
	next map[symbol.Symbol]stateNum
}
