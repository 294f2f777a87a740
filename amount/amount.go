// Package amount implements the fixed-point BTC amount used by the "amount" URI parameter.
//
// An [Amount] is an integer count of satoshis. Parsing and formatting work on decimal digits only,
// so no value is ever rounded.
package amount

//go:generate go tool errtrace -w .

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/bip21/internal/constraints"
	"github.com/ghettovoice/bip21/internal/errorutil"
)

// Decimals is the number of fractional digits of a BTC amount.
const Decimals = 8

// OneBTC is the number of satoshis in one bitcoin.
const OneBTC Amount = 100_000_000

// Error is a sentinel error of amount parsing.
type Error = errorutil.Error

const (
	// ErrInvalidChars is returned for anything but digits with at most one decimal point.
	ErrInvalidChars Error = "invalid characters in amount"
	// ErrTooManyDecimals is returned when the fraction has more than [Decimals] digits.
	ErrTooManyDecimals Error = "too many decimal places in amount"
	// ErrOverflow is returned when the amount does not fit in uint64 satoshis.
	ErrOverflow Error = "amount overflow"
)

// Amount is a number of satoshis.
type Amount uint64

// FromSat returns the amount of n satoshis.
func FromSat(n uint64) Amount { return Amount(n) }

// Sat returns the amount as a number of satoshis.
func (a Amount) Sat() uint64 { return uint64(a) }

// CheckedAdd returns a+b and false if the sum overflows.
func (a Amount) CheckedAdd(b Amount) (Amount, bool) {
	sum, carry := bits.Add64(uint64(a), uint64(b), 0)
	return Amount(sum), carry == 0
}

// Parse parses a decimal BTC amount like "20.3" or "0.00000001".
//
// The fraction is limited to [Decimals] digits. Signs, exponents, spaces
// and digit group separators are rejected.
func Parse[T constraints.Byteseq](s T) (Amount, error) {
	str := string(s)
	whole, frac, hasDot := strings.Cut(str, ".")
	if whole == "" || hasDot && frac == "" {
		return 0, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidChars, "%q", str))
	}
	if !isDigits(whole) || !isDigits(frac) {
		return 0, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidChars, "%q", str))
	}
	if len(frac) > Decimals {
		return 0, errtrace.Wrap(errorutil.NewWrapperError(ErrTooManyDecimals, "%q", str))
	}

	digits := whole + frac + strings.Repeat("0", Decimals-len(frac))
	n, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		// only ErrRange is possible here, the syntax was checked above
		return 0, errtrace.Wrap(errorutil.NewWrapperError(ErrOverflow, "%q", str))
	}
	return Amount(n), nil
}

func isDigits(s string) bool {
	for i := range len(s) {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// String formats the amount in BTC with trailing fractional zeros trimmed.
func (a Amount) String() string {
	whole, frac := uint64(a)/uint64(OneBTC), uint64(a)%uint64(OneBTC)
	if frac == 0 {
		return strconv.FormatUint(whole, 10)
	}
	fs := fmt.Sprintf("%0*d", Decimals, frac)
	return strconv.FormatUint(whole, 10) + "." + strings.TrimRight(fs, "0")
}

// Format implements [fmt.Formatter].
// The 'v' and 's' verbs print the BTC string, 'd' prints satoshis.
func (a Amount) Format(f fmt.State, verb rune) {
	switch verb {
	case 'd':
		fmt.Fprint(f, uint64(a))
	case 'q':
		fmt.Fprint(f, strconv.Quote(a.String()))
	default:
		fmt.Fprint(f, a.String())
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (a Amount) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (a *Amount) UnmarshalText(text []byte) error {
	v, err := Parse(text)
	if err != nil {
		return errtrace.Wrap(err)
	}
	*a = v
	return nil
}

// Ptr returns a pointer to a copy of a.
func Ptr(a Amount) *Amount { return &a }
