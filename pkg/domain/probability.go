package domain

import (
	"fmt"
	"math/big"
	"strings"
)

// Probability is an exact fraction. The zero value is 0.
//
// It has value semantics: no method mutates its receiver, so a Probability
// can be copied and shared without aliasing the underlying big.Rat.
type Probability struct {
	r *big.Rat
}

// NewProbability returns num/den. It panics if den is zero, like big.NewRat.
func NewProbability(num, den int64) Probability {
	return Probability{r: big.NewRat(num, den)}
}

// One is the probability of the certain event.
func One() Probability { return NewProbability(1, 1) }

// Zero is the probability of the impossible event.
func Zero() Probability { return Probability{} }

// ParseProbability reads "1/4", "0.25" or "1".
func ParseProbability(s string) (Probability, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Probability{}, fmt.Errorf("%w: empty probability", ErrInvalidInput)
	}
	// big.Rat.SetString panics on a zero denominator in some versions; reject it up front.
	if i := strings.IndexByte(s, '/'); i >= 0 {
		if den := strings.TrimLeft(strings.TrimSpace(s[i+1:]), "+0"); den == "" {
			return Probability{}, fmt.Errorf("%w: zero denominator in %q", ErrInvalidInput, s)
		}
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return Probability{}, fmt.Errorf("%w: not a fraction: %q", ErrInvalidInput, s)
	}
	return Probability{r: r}, nil
}

// FromRat copies r.
func FromRat(r *big.Rat) Probability {
	if r == nil {
		return Probability{}
	}
	return Probability{r: new(big.Rat).Set(r)}
}

func (p Probability) rat() *big.Rat {
	if p.r == nil {
		return new(big.Rat)
	}
	return p.r
}

// Rat returns a copy of the underlying fraction.
func (p Probability) Rat() *big.Rat {
	return new(big.Rat).Set(p.rat())
}

// Add returns p + q.
func (p Probability) Add(q Probability) Probability {
	return Probability{r: new(big.Rat).Add(p.rat(), q.rat())}
}

// Sub returns p - q.
func (p Probability) Sub(q Probability) Probability {
	return Probability{r: new(big.Rat).Sub(p.rat(), q.rat())}
}

// Mul returns p * q.
func (p Probability) Mul(q Probability) Probability {
	return Probability{r: new(big.Rat).Mul(p.rat(), q.rat())}
}

// Quo returns p / q. It panics if q is zero.
func (p Probability) Quo(q Probability) Probability {
	return Probability{r: new(big.Rat).Quo(p.rat(), q.rat())}
}

// Cmp compares p and q and returns -1, 0 or +1.
func (p Probability) Cmp(q Probability) int {
	return p.rat().Cmp(q.rat())
}

// Equal reports whether p == q exactly.
func (p Probability) Equal(q Probability) bool {
	return p.Cmp(q) == 0
}

// Sign returns -1, 0 or +1.
func (p Probability) Sign() int {
	return p.rat().Sign()
}

// IsZero reports whether p == 0.
func (p Probability) IsZero() bool { return p.Sign() == 0 }

// IsOne reports whether p == 1.
func (p Probability) IsOne() bool { return p.Cmp(One()) == 0 }

// String returns the canonical form: "1/4", or "1" for integers.
func (p Probability) String() string {
	return p.rat().RatString()
}

// TeX returns a typesetting-safe rendering such as `\frac{1}{4}`.
func (p Probability) TeX() string {
	r := p.rat()
	if r.IsInt() {
		return r.Num().String()
	}
	if r.Sign() < 0 {
		return fmt.Sprintf(`-\frac{%s}{%s}`, new(big.Int).Neg(r.Num()), r.Denom())
	}
	return fmt.Sprintf(`\frac{%s}{%s}`, r.Num(), r.Denom())
}

// Decimal rounds p to prec fractional digits. Display only.
func (p Probability) Decimal(prec int) string {
	return p.rat().FloatString(prec)
}

// MarshalText implements encoding.TextMarshaler.
func (p Probability) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Probability) UnmarshalText(text []byte) error {
	parsed, err := ParseProbability(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Sum adds all probabilities.
func Sum(ps ...Probability) Probability {
	total := new(big.Rat)
	for _, p := range ps {
		total.Add(total, p.rat())
	}
	return Probability{r: total}
}
