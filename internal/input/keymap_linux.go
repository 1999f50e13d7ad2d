//go:build linux

package input

// nativeKeyTable maps Mac key codes to Linux evdev KEY_* codes
// (linux/input-event-codes.h).
var nativeKeyTable = map[int]int{
	// Letters
	macA: 30, macB: 48, macC: 46, macD: 32, macE: 18, macF: 33, macG: 34,
	macH: 35, macI: 23, macJ: 36, macK: 37, macL: 38, macM: 50, macN: 49,
	macO: 24, macP: 25, macQ: 16, macR: 19, macS: 31, macT: 20, macU: 22,
	macV: 47, macW: 17, macX: 45, macY: 21, macZ: 44,

	// Number row
	mac1: 2, mac2: 3, mac3: 4, mac4: 5, mac5: 6,
	mac6: 7, mac7: 8, mac8: 9, mac9: 10, mac0: 11,

	// Punctuation
	macSpace: 57, macReturn: 28, macDelete: 14, macTab: 15, macEscape: 1,
	macComma: 51, macPeriod: 52, macSlash: 53, macSemicolon: 39, macQuote: 40,
	macLeftBracket: 26, macRightBracket: 27, macBackslash: 43, macGrave: 41,
	macMinus: 12, macEqual: 13,

	// Modifiers: Option -> Alt, Command -> Super
	macShift: 42, macRightShift: 54, macControl: 29, macRightControl: 97,
	macOption: 56, macRightOption: 100, macCommand: 125, macRightCommand: 126,
	macCapsLock: 58,

	// Function keys
	macF1: 59, macF2: 60, macF3: 61, macF4: 62, macF5: 63, macF6: 64,
	macF7: 65, macF8: 66, macF9: 67, macF10: 68, macF11: 87, macF12: 88,

	// Navigation
	macLeftArrow: 105, macRightArrow: 106, macDownArrow: 108, macUpArrow: 103,
	macHome: 102, macEnd: 107, macPageUp: 104, macPageDown: 109,
	macForwardDel: 111, macHelp: 110,

	// Numpad
	macKPClear: 69, macKP0: 82, macKP1: 79, macKP2: 80, macKP3: 81, macKP4: 75,
	macKP5: 76, macKP6: 77, macKP7: 71, macKP8: 72, macKP9: 73,
	macKPDecimal: 83, macKPPlus: 78, macKPMinus: 74, macKPMultiply: 55,
	macKPDivide: 98, macKPEnter: 96,
}
