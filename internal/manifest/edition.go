// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"fmt"
)

// Edition is a C++ language-standard year, ordered by release order.
type Edition int

const (
	Cpp98 Edition = iota
	Cpp03
	Cpp11
	Cpp14
	Cpp17
	Cpp20
	Cpp23
	Cpp26
)

// ErrInvalidEdition is the sentinel wrapped by InvalidEditionError.
var ErrInvalidEdition = errors.New("invalid edition")

// InvalidEditionError reports an edition string matching none of the
// recognized years or their historical aliases.
type InvalidEditionError struct {
	Value string
}

func (e *InvalidEditionError) Error() string {
	return fmt.Sprintf("invalid edition: %s", e.Value)
}

func (e *InvalidEditionError) Unwrap() error { return ErrInvalidEdition }

// editionAliases maps every accepted spelling (canonical or historical
// alias) to its Edition. 98/03/11/... are canonical; 0x/1y/1z/2a/2b/2c are
// the aliases the C++ standards committee used before ratification.
var editionAliases = map[string]Edition{
	"98": Cpp98,
	"03": Cpp03,
	"11": Cpp11, "0x": Cpp11,
	"14": Cpp14, "1y": Cpp14,
	"17": Cpp17, "1z": Cpp17,
	"20": Cpp20, "2a": Cpp20,
	"23": Cpp23, "2b": Cpp23,
	"26": Cpp26, "2c": Cpp26,
}

// editionCanonical is the canonical numeric string for each Edition.
var editionCanonical = map[Edition]string{
	Cpp98: "98",
	Cpp03: "03",
	Cpp11: "11",
	Cpp14: "14",
	Cpp17: "17",
	Cpp20: "20",
	Cpp23: "23",
	Cpp26: "26",
}

// ParseEdition parses an edition string, accepting either its canonical
// two-character year or its pre-ratification alias.
func ParseEdition(s string) (Edition, error) {
	ed, ok := editionAliases[s]
	if !ok {
		return 0, &InvalidEditionError{Value: s}
	}
	return ed, nil
}

// String returns the canonical numeric form, e.g. "11" for either "11" or
// its alias "0x".
func (e Edition) String() string {
	return editionCanonical[e]
}

// StdFlag returns the compiler `-std=` flag value for this edition, e.g.
// "c++17".
func (e Edition) StdFlag() string {
	return "c++" + editionCanonical[e]
}
