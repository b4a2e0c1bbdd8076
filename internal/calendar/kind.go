package calendar

import (
	"fmt"

	"github.com/ldelacroix/polycal/internal/config"
)

// Kind identifies one of the supported calendar systems. The set is closed at
// compile time; each Kind owns exactly one converter implementation.
type Kind uint8

const (
	Gregorian Kind = iota
	Julian
	Islamic
	Hebrew
	Persian
	Chinese
	Ethiopian
	Coptic
	IndianSaka
	Bahai
	ThaiBuddhist
	MayanTzolkin
	MayanHaab
	MayanLongCount
	Cherokee
	Iroquois
	AztecXiuhpohualli

	numKinds
)

// kindNames maps each Kind to its stable external identifier. These strings
// are the CLI/HTTP vocabulary and must not change between releases.
var kindNames = [numKinds]string{
	Gregorian:         "gregorian",
	Julian:            "julian",
	Islamic:           "islamic",
	Hebrew:            "hebrew",
	Persian:           "persian",
	Chinese:           "chinese",
	Ethiopian:         "ethiopian",
	Coptic:            "coptic",
	IndianSaka:        "indian-saka",
	Bahai:             "bahai",
	ThaiBuddhist:      "thai-buddhist",
	MayanTzolkin:      "mayan-tzolkin",
	MayanHaab:         "mayan-haab",
	MayanLongCount:    "mayan-longcount",
	Cherokee:          "cherokee",
	Iroquois:          "iroquois",
	AztecXiuhpohualli: "aztec-xiuhpohualli",
}

// String returns the stable identifier of the kind.
func (k Kind) String() string {
	if k >= numKinds {
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// ParseKind resolves a stable identifier back to its Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%s: %q", config.ErrUnknownKind, s)
}

// Kinds returns all supported calendar kinds in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, numKinds)
	for k := Kind(0); k < numKinds; k++ {
		out = append(out, k)
	}
	return out
}
