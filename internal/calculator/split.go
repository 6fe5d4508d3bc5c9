package calculator

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/money"
)

// SplitType selects how an expense total is divided.
type SplitType string

const (
	SplitEqual      SplitType = "equal"
	SplitPercentage SplitType = "percentage"
	SplitExact      SplitType = "exact"
)

var (
	ErrNoParticipants   = errors.New("must have at least one participant")
	ErrUnknownSplitType = errors.New("unknown split type")
	ErrPercentageSum    = errors.New("percentages must add up to 100")
	ErrSplitSumMismatch = errors.New("split amounts don't add up to the total")
)

// SplitTolerance is the largest accepted gap between an expense total and
// the sum of its split amounts.
const SplitTolerance money.Amount = 1

var hundred = decimal.NewFromInt(100)

// Share is one participant's input to CalculateSplit. Percentage is read
// for percentage splits, Amount for exact splits.
type Share struct {
	MemberID   string
	Percentage decimal.Decimal
	Amount     money.Amount
}

// CalculateSplit divides total among shares and returns one amount per
// share, in the same order. The result always adds up to total exactly for
// equal and percentage splits.
func CalculateSplit(total money.Amount, splitType SplitType, shares []Share) ([]money.Amount, error) {
	if !total.IsPositive() {
		return nil, fmt.Errorf("total %s: %w", total, ErrNonPositiveAmount)
	}
	if len(shares) == 0 {
		return nil, ErrNoParticipants
	}

	switch splitType {
	case SplitEqual, "":
		return splitEqually(total, len(shares)), nil
	case SplitPercentage:
		return splitByPercentage(total, shares)
	case SplitExact:
		amounts := make([]money.Amount, len(shares))
		for i, s := range shares {
			if s.Amount < 0 {
				return nil, fmt.Errorf("share for %s amount %s: %w", s.MemberID, s.Amount, ErrNonPositiveAmount)
			}
			amounts[i] = s.Amount
		}
		if err := ValidateSplitSum(total, amounts); err != nil {
			return nil, err
		}
		return amounts, nil
	default:
		return nil, fmt.Errorf("%q: %w", splitType, ErrUnknownSplitType)
	}
}

// splitEqually gives each of n participants total/n; the first
// total%n participants get one extra minor unit.
func splitEqually(total money.Amount, n int) []money.Amount {
	base := total / money.Amount(n)
	rem := int(total % money.Amount(n))
	amounts := make([]money.Amount, n)
	for i := range amounts {
		amounts[i] = base
		if i < rem {
			amounts[i]++
		}
	}
	return amounts
}

// splitByPercentage floors each share and hands the leftover minor units to
// the largest fractional remainders, ties going to the earlier share.
func splitByPercentage(total money.Amount, shares []Share) ([]money.Amount, error) {
	sum := decimal.Zero
	for _, s := range shares {
		if s.Percentage.IsNegative() {
			return nil, fmt.Errorf("share for %s percentage %s: %w", s.MemberID, s.Percentage, ErrNonPositiveAmount)
		}
		sum = sum.Add(s.Percentage)
	}
	if !sum.Equal(hundred) {
		return nil, fmt.Errorf("got %s: %w", sum, ErrPercentageSum)
	}

	type remainder struct {
		index int
		frac  decimal.Decimal
	}

	totalMinor := decimal.NewFromInt(total.Minor())
	amounts := make([]money.Amount, len(shares))
	remainders := make([]remainder, len(shares))
	var allocated money.Amount
	for i, s := range shares {
		exact := totalMinor.Mul(s.Percentage).Div(hundred)
		floor := exact.Floor()
		amounts[i] = money.Amount(floor.IntPart())
		allocated += amounts[i]
		remainders[i] = remainder{index: i, frac: exact.Sub(floor)}
	}

	sort.SliceStable(remainders, func(i, j int) bool {
		return remainders[i].frac.GreaterThan(remainders[j].frac)
	})
	for k := 0; allocated < total; k++ {
		amounts[remainders[k%len(remainders)].index]++
		allocated++
	}

	return amounts, nil
}

// ValidateSplitSum checks that amounts add up to total within SplitTolerance.
func ValidateSplitSum(total money.Amount, amounts []money.Amount) error {
	sum, err := money.CheckedSum(amounts...)
	if err != nil {
		return fmt.Errorf("splits sum: %w", err)
	}
	if (sum - total).Abs() > SplitTolerance {
		return fmt.Errorf("splits sum to %s, total is %s: %w", sum, total, ErrSplitSumMismatch)
	}
	return nil
}
