package input

import (
	"sort"
	"sync"
)

// Keymap translates source-platform virtual key codes into native key codes.
// The base table is static data for the build platform; overrides come from
// configuration and may be replaced while a session is running.
type Keymap struct {
	mu        sync.RWMutex
	base      map[int]int
	overrides map[int]int
}

// NewKeymap creates a keymap over base. The map is not copied and must not
// be modified afterwards.
func NewKeymap(base map[int]int) *Keymap {
	return &Keymap{base: base}
}

// DefaultKeymap returns the built-in table for this platform.
func DefaultKeymap() *Keymap {
	return NewKeymap(nativeKeyTable)
}

// Lookup returns the native code for a source code.
func (k *Keymap) Lookup(code int) (int, bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if native, ok := k.overrides[code]; ok {
		return native, true
	}
	native, ok := k.base[code]
	return native, ok
}

// SetOverrides replaces the override table. A nil map clears it.
func (k *Keymap) SetOverrides(overrides map[int]int) {
	cp := make(map[int]int, len(overrides))
	for src, native := range overrides {
		cp[src] = native
	}
	k.mu.Lock()
	k.overrides = cp
	k.mu.Unlock()
}

// Mapping is one resolved keymap entry.
type Mapping struct {
	Source   int
	Native   int
	Override bool
}

// Entries lists the effective table ordered by source code.
func (k *Keymap) Entries() []Mapping {
	k.mu.RLock()
	defer k.mu.RUnlock()

	out := make([]Mapping, 0, len(k.base)+len(k.overrides))
	for src, native := range k.base {
		if _, ok := k.overrides[src]; ok {
			continue
		}
		out = append(out, Mapping{Source: src, Native: native})
	}
	for src, native := range k.overrides {
		out = append(out, Mapping{Source: src, Native: native, Override: true})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Source < out[j].Source })
	return out
}

// Source key codes. The source machine is a Mac and sends CGKeyCode values.
const (
	macA            = 0
	macS            = 1
	macD            = 2
	macF            = 3
	macH            = 4
	macG            = 5
	macZ            = 6
	macX            = 7
	macC            = 8
	macV            = 9
	macB            = 11
	macQ            = 12
	macW            = 13
	macE            = 14
	macR            = 15
	macY            = 16
	macT            = 17
	mac1            = 18
	mac2            = 19
	mac3            = 20
	mac4            = 21
	mac6            = 22
	mac5            = 23
	macEqual        = 24
	mac9            = 25
	mac7            = 26
	macMinus        = 27
	mac8            = 28
	mac0            = 29
	macRightBracket = 30
	macO            = 31
	macU            = 32
	macLeftBracket  = 33
	macI            = 34
	macP            = 35
	macReturn       = 36
	macL            = 37
	macJ            = 38
	macQuote        = 39
	macK            = 40
	macSemicolon    = 41
	macBackslash    = 42
	macComma        = 43
	macSlash        = 44
	macN            = 45
	macM            = 46
	macPeriod       = 47
	macTab          = 48
	macSpace        = 49
	macGrave        = 50
	macDelete       = 51
	macEscape       = 53
	macRightCommand = 54
	macCommand      = 55
	macShift        = 56
	macCapsLock     = 57
	macOption       = 58
	macControl      = 59
	macRightShift   = 60
	macRightOption  = 61
	macRightControl = 62
	macKPDecimal    = 65
	macKPMultiply   = 67
	macKPPlus       = 69
	macKPClear      = 71
	macKPDivide     = 75
	macKPEnter      = 76
	macKPMinus      = 78
	macKP0          = 82
	macKP1          = 83
	macKP2          = 84
	macKP3          = 85
	macKP4          = 86
	macKP5          = 87
	macKP6          = 88
	macKP7          = 89
	macKP8          = 91
	macKP9          = 92
	macF5           = 96
	macF6           = 97
	macF7           = 98
	macF3           = 99
	macF8           = 100
	macF9           = 101
	macF11          = 103
	macF10          = 109
	macF12          = 111
	macHelp         = 114
	macHome         = 115
	macPageUp       = 116
	macForwardDel   = 117
	macF4           = 118
	macEnd          = 119
	macF2           = 120
	macPageDown     = 121
	macF1           = 122
	macLeftArrow    = 123
	macRightArrow   = 124
	macDownArrow    = 125
	macUpArrow      = 126
)
