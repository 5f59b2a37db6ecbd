// Package ease is for polynomials in one variable and the easing curves built
// from them.
/*
BSD 3-Clause License

Copyright (c) 2017–21, Norbert Pillmayer.

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
   list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
   this list of conditions and the following disclaimer in the documentation
   and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
   contributors may be used to endorse or promote products derived from
   this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/
package ease

import (
	"bytes"
	"fmt"
	"math"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/globetrip"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'globetrip.ease'
func tracer() tracing.Trace {
	return tracing.Select("globetrip.ease")
}

// X is a helper for quick construction of polynomials.
// It denotes a term
//
//	C⋅t^I
//
// I > 0
type X struct {
	I int     // exponent of t
	C float64 // coefficient
}

// New creates a polynomial, given the constant term and further terms.
//
// Use it as
//
//	ease.New(0, ease.X{1, 2}, ease.X{2, -1})
//
// to get
//
//	P(t) = 2t - t²
func New(c float64, tms ...X) (Polynomial, error) {
	p := NewConstantPolynomial(c)
	var err error
	for _, t := range tms {
		if t.I < 1 {
			err = fmt.Errorf("term exponent must be at least 1, skipping it")
		} else {
			p.SetTerm(t.I, p.Coeff(t.I)+t.C)
		}
	}
	return p.Zap(), err
}

// Must is a helper for polynomial literals; it panics on error.
func Must(p Polynomial, err error) Polynomial {
	if err != nil {
		panic(err)
	}
	return p
}

// Polynomial is a type for polynomials in one variable
//
//	c + a.1 t + a.2 t² + ... a.n tⁿ .
//
// We store the coefficients only, in a TreeMap (sorted map) keyed by
// exponent. Index 0 is the constant term.
type Polynomial struct {
	Terms *treemap.Map
}

// NewConstantPolynomial creates a Polynomial consisting of just a constant term.
func NewConstantPolynomial(c float64) Polynomial {
	p := Polynomial{}
	p.checkTerms()
	p.Terms.Put(0, c)
	return p
}

func (p *Polynomial) checkTerms() {
	if p.Terms == nil {
		p.Terms = treemap.NewWithIntComparator()
	}
}

// SetTerm sets the coefficient for the term of exponent i.
// For i=0, sets the constant term.
func (p Polynomial) SetTerm(i int, scale float64) Polynomial {
	p.checkTerms()
	p.Terms.Put(i, scale)
	return p
}

// Coeff returns the coefficient of the term with exponent i, or 0.
func (p Polynomial) Coeff(i int) float64 {
	if p.Terms == nil {
		return 0
	}
	if c, found := p.Terms.Get(i); found {
		return c.(float64)
	}
	return 0
}

// Degree returns the highest exponent with a non-zero coefficient.
func (p Polynomial) Degree() int {
	deg := 0
	if p.Terms == nil {
		return deg
	}
	it := p.Terms.Iterator()
	for it.Next() {
		if !globetrip.Is0(it.Value().(float64)) {
			deg = it.Key().(int)
		}
	}
	return deg
}

// Zap removes all terms with coefficient ε, except the constant term.
func (p Polynomial) Zap() Polynomial {
	p.checkTerms()
	var zeros []int
	it := p.Terms.Iterator()
	for it.Next() {
		if i := it.Key().(int); i > 0 && globetrip.Is0(it.Value().(float64)) {
			zeros = append(zeros, i)
		}
	}
	for _, i := range zeros {
		p.Terms.Remove(i)
	}
	return p
}

// Eval evaluates p at t.
func (p Polynomial) Eval(t float64) float64 {
	if p.Terms == nil {
		return 0
	}
	sum := 0.0
	it := p.Terms.Iterator()
	for it.Next() {
		i, c := it.Key().(int), it.Value().(float64)
		if i == 0 {
			sum += c
			continue
		}
		sum += c * math.Pow(t, float64(i))
	}
	return sum
}

// Derivative returns dp/dt as a new polynomial.
func (p Polynomial) Derivative() Polynomial {
	d := NewConstantPolynomial(0)
	if p.Terms == nil {
		return d
	}
	it := p.Terms.Iterator()
	for it.Next() {
		i, c := it.Key().(int), it.Value().(float64)
		if i > 0 {
			d.SetTerm(i-1, c*float64(i))
		}
	}
	return d.Zap()
}

// Add adds two polynomials. Returns a new polynomial.
func (p Polynomial) Add(p2 Polynomial) Polynomial {
	sum := NewConstantPolynomial(0)
	for _, q := range []Polynomial{p, p2} {
		if q.Terms == nil {
			continue
		}
		it := q.Terms.Iterator()
		for it.Next() {
			i, c := it.Key().(int), it.Value().(float64)
			sum.SetTerm(i, sum.Coeff(i)+c)
		}
	}
	return sum.Zap()
}

// Ease evaluates p at x clamped to [0,1]. Polynomial thus satisfies Curve.
func (p Polynomial) Ease(x float64) float64 {
	return p.Eval(globetrip.Clamp01(x))
}

// String is a Stringer for polynomials, e.g. "2t - t^2".
func (p Polynomial) String() string {
	var s bytes.Buffer
	if p.Terms == nil || p.Terms.Size() == 0 {
		return "0"
	}
	it := p.Terms.Iterator()
	first := true
	for it.Next() {
		i, c := it.Key().(int), it.Value().(float64)
		if globetrip.Is0(c) && !(i == 0 && p.Terms.Size() == 1) {
			continue
		}
		if first {
			if c < 0 {
				s.WriteString("-")
			}
		} else if c < 0 {
			s.WriteString(" - ")
		} else {
			s.WriteString(" + ")
		}
		first = false
		a := math.Abs(c)
		switch {
		case i == 0:
			s.WriteString(fmt.Sprintf("%g", a))
		case globetrip.Is1(a):
		default:
			s.WriteString(fmt.Sprintf("%g", a))
		}
		switch {
		case i == 1:
			s.WriteString("t")
		case i > 1:
			s.WriteString(fmt.Sprintf("t^%d", i))
		}
	}
	if first {
		return "0"
	}
	return s.String()
}
