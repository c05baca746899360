package main

import (
	"io/fs"
	"math/big"
	"math/bits"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Uint128 is an unsigned 128-bit counter. Line and byte totals of very large
// trees can exceed what a uint64 holds, so every total is kept in one of these.
type Uint128 struct {
	Hi uint64
	Lo uint64
}

// U128 widens v to a Uint128.
func U128(v uint64) Uint128 {
	return Uint128{Lo: v}
}

// Add returns u+v. Overflow past 128 bits wraps.
func (u Uint128) Add(v Uint128) Uint128 {
	lo, carry := bits.Add64(u.Lo, v.Lo, 0)
	hi, _ := bits.Add64(u.Hi, v.Hi, carry)
	return Uint128{Hi: hi, Lo: lo}
}

// IsZero reports whether u is 0.
func (u Uint128) IsZero() bool {
	return u.Hi == 0 && u.Lo == 0
}

// Cmp returns -1, 0 or +1 depending on whether u is less than, equal to or
// greater than v.
func (u Uint128) Cmp(v Uint128) int {
	switch {
	case u.Hi < v.Hi:
		return -1
	case u.Hi > v.Hi:
		return 1
	case u.Lo < v.Lo:
		return -1
	case u.Lo > v.Lo:
		return 1
	}
	return 0
}

// Big converts u to a freshly allocated big.Int.
func (u Uint128) Big() *big.Int {
	b := new(big.Int).SetUint64(u.Hi)
	b.Lsh(b, 64)
	return b.Or(b, new(big.Int).SetUint64(u.Lo))
}

func (u Uint128) String() string {
	if u.Hi == 0 {
		return strconv.FormatUint(u.Lo, 10)
	}
	return u.Big().String()
}

// MarshalYAML emits the counter as a plain integer scalar.
func (u Uint128) MarshalYAML() (interface{}, error) {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: u.String()}, nil
}

// Measurement holds the counts attached to a single file or to a whole subtree.
// Tokens stays zero unless a tokenizer is configured.
type Measurement struct {
	Lines  Uint128
	Bytes  Uint128
	Tokens Uint128
}

// Add returns the field-wise sum of m and o.
func (m Measurement) Add(o Measurement) Measurement {
	return Measurement{
		Lines:  m.Lines.Add(o.Lines),
		Bytes:  m.Bytes.Add(o.Bytes),
		Tokens: m.Tokens.Add(o.Tokens),
	}
}

// Node is one visited entry of a walk. Directory nodes carry their children,
// files first, each group sorted by name. Measurement of a directory is the
// sum over every child that was measured successfully.
type Node struct {
	Name        string
	Path        string
	IsDir       bool
	Mode        fs.FileMode
	Category    Category
	Measurement Measurement

	Files []*Node
	Dirs  []*Node
}

// Hidden reports whether the entry name begins with a dot.
func (n *Node) Hidden() bool {
	return !IsVisible(n.Name)
}
