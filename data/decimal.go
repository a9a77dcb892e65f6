package data

import (
	"fmt"
	"math/big"
)

// Decimal holds a Smithy numeric literal (integer or floating point) at
// arbitrary precision, for bigInteger/bigDecimal trait and member literals.
// math/big is the natural stdlib home for it since no example repo in the
// pack brings a third-party arbitrary-precision numeric library.
type Decimal struct {
	rat *big.Rat
}

func NewDecimal(f float64) *Decimal {
	r := new(big.Rat)
	r.SetFloat64(f)
	return &Decimal{rat: r}
}

func ParseDecimal(s string) (*Decimal, error) {
	r := new(big.Rat)
	if _, ok := r.SetString(s); !ok {
		return nil, fmt.Errorf("not a valid number: %q", s)
	}
	return &Decimal{rat: r}, nil
}

func (d *Decimal) AsInt() int {
	if d == nil || d.rat == nil {
		return 0
	}
	f, _ := d.rat.Float64()
	return int(f)
}

func (d *Decimal) AsInt64() int64 {
	if d == nil || d.rat == nil {
		return 0
	}
	f, _ := d.rat.Float64()
	return int64(f)
}

func (d *Decimal) AsFloat64() float64 {
	if d == nil || d.rat == nil {
		return 0
	}
	f, _ := d.rat.Float64()
	return f
}

func (d *Decimal) String() string {
	if d == nil || d.rat == nil {
		return "0"
	}
	if d.rat.IsInt() {
		return d.rat.Num().String()
	}
	f, _ := d.rat.Float64()
	return big.NewFloat(f).Text('g', -1)
}

func (d *Decimal) MarshalJSON() ([]byte, error) {
	return []byte(d.String()), nil
}
