package calculator

import "github.com/mmynk/splitledger/internal/money"

// ledger is a dense debtor x creditor matrix over n members.
// The diagonal is not stored: row a holds n-1 cells, skipping column a.
type ledger struct {
	n     int
	owed  []money.Amount
	since []int64
}

func newLedger(n int) *ledger {
	size := 0
	if n > 1 {
		size = n * (n - 1)
	}
	return &ledger{
		n:     n,
		owed:  make([]money.Amount, size),
		since: make([]int64, size),
	}
}

// cell maps (debtor, creditor) to its offset. Callers guarantee debtor != creditor.
func (l *ledger) cell(debtor, creditor int) int {
	col := creditor
	if creditor > debtor {
		col--
	}
	return debtor*(l.n-1) + col
}

func (l *ledger) get(debtor, creditor int) money.Amount {
	return l.owed[l.cell(debtor, creditor)]
}

func (l *ledger) set(debtor, creditor int, amt money.Amount) {
	l.owed[l.cell(debtor, creditor)] = amt
}

func (l *ledger) add(debtor, creditor int, amt money.Amount) {
	l.owed[l.cell(debtor, creditor)] += amt
}

// touch records date as the oldest contribution to the cell.
func (l *ledger) touch(debtor, creditor int, date int64) {
	i := l.cell(debtor, creditor)
	if l.since[i] == 0 || (date != 0 && date < l.since[i]) {
		l.since[i] = date
	}
}

func (l *ledger) sinceOf(debtor, creditor int) int64 {
	return l.since[l.cell(debtor, creditor)]
}

// net collapses every pair into a single non-negative directed debt.
// Each unordered pair is visited once with a < b.
func (l *ledger) net() {
	for a := 0; a < l.n; a++ {
		for b := a + 1; b < l.n; b++ {
			diff := l.get(a, b) - l.get(b, a)
			switch {
			case diff > 0:
				l.set(a, b, diff)
				l.set(b, a, 0)
			case diff < 0:
				l.set(b, a, -diff)
				l.set(a, b, 0)
			default:
				l.set(a, b, 0)
				l.set(b, a, 0)
			}
		}
	}
}
