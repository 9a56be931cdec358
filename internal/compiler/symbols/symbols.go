package symbols

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Type is one of the scalar types of the language. The zero value None marks
// a value whose type could not be resolved.
type Type int

const (
	None Type = iota
	Int
	Float
	Char
	Void
)

func (t Type) String() string {
	switch t {
	case Int:
		return "int"
	case Float:
		return "float"
	case Char:
		return "char"
	case Void:
		return "void"
	default:
		return "none"
	}
}

// ParseType maps a type keyword to its Type.
func ParseType(name string) (Type, error) {
	switch name {
	case "int":
		return Int, nil
	case "float":
		return Float, nil
	case "char":
		return Char, nil
	case "void":
		return Void, nil
	}
	return None, fmt.Errorf("unknown type %q", name)
}

// Compatible reports whether a value of type value may be stored in a slot of
// type declared. Identical types match and int widens into float; nothing else
// converts, and None matches nothing.
func Compatible(declared, value Type) bool {
	if declared == None || value == None {
		return false
	}
	if declared == value {
		return true
	}
	return declared == Float && value == Int
}

// Classify infers the type of an operand from its literal text. Numerals and
// quoted char literals are typed directly; everything else is treated as a name
// and handed to resolve.
func Classify(text string, resolve func(name string) (Type, bool)) Type {
	if text == "" {
		return None
	}
	if isAllDigits(text) {
		return Int
	}
	if isNumeral(text) {
		if _, err := strconv.ParseFloat(text, 64); err == nil {
			return Float
		}
	}
	if len(text) >= 3 && text[0] == '\'' && text[len(text)-1] == '\'' {
		return Char
	}
	if resolve == nil {
		return None
	}
	if t, ok := resolve(text); ok {
		return t
	}
	return None
}

func isAllDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// isNumeral keeps names such as "inf" or "nan", which strconv would happily
// parse, on the identifier path.
func isNumeral(s string) bool {
	c := s[0]
	return ('0' <= c && c <= '9') || c == '.'
}

// Library is the table of externally-known functions callable without a prior
// declaration, keyed by name with the function's return type.
type Library map[string]Type

// DefaultLibrary returns the standard C functions every program may call.
func DefaultLibrary() Library {
	return Library{
		"printf": Int,
		"scanf":  Int,
		"malloc": Int,
		"free":   Void,
		"exit":   Void,
	}
}

// Lookup returns the return type of an external function.
func (l Library) Lookup(name string) (Type, bool) {
	t, ok := l[name]
	return t, ok
}

// Names returns the library's function names in sorted order.
func (l Library) Names() []string {
	names := make([]string, 0, len(l))
	for name := range l {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (l Library) String() string {
	return "[" + strings.Join(l.Names(), " ") + "]"
}
