// SPDX-License-Identifier: GPL-3.0-or-later
package sieve

import "strconv"

type variableKind int

const (
	kindEmpty = variableKind(iota)
	kindString
	kindNumber
	kindBool
)

// Variable is a host value. The zero Variable is the absent value, which is
// what plugin functions return when they decline to answer.
type Variable struct {
	kind variableKind
	str  string
	num  float64
	b    bool
}

func StringVar(s string) Variable {
	return Variable{kind: kindString, str: s}
}

func FloatVar(f float64) Variable {
	return Variable{kind: kindNumber, num: f}
}

func BoolVar(b bool) Variable {
	return Variable{kind: kindBool, b: b}
}

func (v Variable) IsEmpty() bool {
	return v.kind == kindEmpty
}

func (v Variable) ToString() string {
	switch v.kind {
	case kindString:
		return v.str
	case kindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case kindBool:
		return strconv.FormatBool(v.b)
	}
	return ""
}

func (v Variable) ToBool() bool {
	switch v.kind {
	case kindString:
		return v.str != "" && v.str != "0" && v.str != "false"
	case kindNumber:
		return v.num != 0
	case kindBool:
		return v.b
	}
	return false
}

func (v Variable) ToFloat() (float64, bool) {
	switch v.kind {
	case kindString:
		f, err := strconv.ParseFloat(v.str, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	case kindNumber:
		return v.num, true
	case kindBool:
		if v.b {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}
