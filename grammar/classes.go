package grammar

import (
	"fmt"
)

// Class is a terminal character class, it matches exactly one rune.
type Class int

const (
	NoClass Class = iota
	Digit
	Lower
	Upper
	Alpha
	Alnum
	AlnumUnderscore
	HexDigit
	Space
	Punct
)

// Range is an inclusive rune range.
type Range struct {
	Lo, Hi rune
}

type classEntry struct {
	name   string
	ranges []Range
}

var (
	digitRange = Range{'0', '9'}
	lowerRange = Range{'a', 'z'}
	upperRange = Range{'A', 'Z'}
)

var classTable = [...]classEntry{
	NoClass:         {"", nil},
	Digit:           {"DIGIT", []Range{digitRange}},
	Lower:           {"LOWER", []Range{lowerRange}},
	Upper:           {"UPPER", []Range{upperRange}},
	Alpha:           {"ALPHA", []Range{lowerRange, upperRange}},
	Alnum:           {"ALNUM", []Range{lowerRange, upperRange, digitRange}},
	AlnumUnderscore: {"ALNUM_", []Range{lowerRange, upperRange, digitRange, {'_', '_'}, {'@', '@'}}},
	HexDigit:        {"HEXDIGIT", []Range{digitRange, {'a', 'f'}, {'A', 'F'}}},
	Space:           {"SPACE", []Range{{' ', ' '}, {'\t', '\t'}}},
	Punct:           {"PUNCT", []Range{{'!', '/'}, {':', '@'}, {'[', '`'}, {'{', '~'}}},
}

var classIndex map[string]Class

func init() {
	classIndex = make(map[string]Class, len(classTable))
	for i, entry := range classTable {
		if entry.name != "" {
			classIndex[entry.name] = Class(i)
		}
	}
}

// ClassByName returns terminal class with given name, name is case-sensitive.
func ClassByName(name string) (Class, bool) {
	c, f := classIndex[name]
	return c, f
}

// ClassNames returns names of all terminal classes in declaration order.
func ClassNames() []string {
	res := make([]string, 0, len(classTable)-1)
	for _, entry := range classTable[1:] {
		res = append(res, entry.name)
	}
	return res
}

func (c Class) valid() bool {
	return c > NoClass && int(c) < len(classTable)
}

func (c Class) String() string {
	if c.valid() {
		return classTable[c].name
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

// Ranges returns rune ranges of the class, ordered by preference for sample generation.
func (c Class) Ranges() []Range {
	if c.valid() {
		return classTable[c].ranges
	}
	return nil
}

// Contains reports whether r belongs to the class.
func (c Class) Contains(r rune) bool {
	for _, rng := range c.Ranges() {
		if r >= rng.Lo && r <= rng.Hi {
			return true
		}
	}
	return false
}

// MarshalText encodes class as its name.
func (c Class) MarshalText() ([]byte, error) {
	if !c.valid() {
		return nil, fmt.Errorf("unknown terminal class %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText decodes class name.
func (c *Class) UnmarshalText(text []byte) error {
	cls, f := ClassByName(string(text))
	if !f {
		return fmt.Errorf("unknown terminal class %q", text)
	}
	*c = cls
	return nil
}
