//go:build windows

package input

// Windows virtual-key codes used by the table below.
const (
	vkBack      = 0x08
	vkTab       = 0x09
	vkReturn    = 0x0D
	vkCapital   = 0x14
	vkEscape    = 0x1B
	vkSpace     = 0x20
	vkPrior     = 0x21
	vkNext      = 0x22
	vkEnd       = 0x23
	vkHome      = 0x24
	vkLeft      = 0x25
	vkUp        = 0x26
	vkRight     = 0x27
	vkDown      = 0x28
	vkInsert    = 0x2D
	vkDelete    = 0x2E
	vkLWin      = 0x5B
	vkRWin      = 0x5C
	vkNumpad0   = 0x60
	vkMultiply  = 0x6A
	vkAdd       = 0x6B
	vkSubtract  = 0x6D
	vkDecimal   = 0x6E
	vkDivide    = 0x6F
	vkF1        = 0x70
	vkNumLock   = 0x90
	vkLShift    = 0xA0
	vkRShift    = 0xA1
	vkLControl  = 0xA2
	vkRControl  = 0xA3
	vkLMenu     = 0xA4
	vkRMenu     = 0xA5
	vkOEM1      = 0xBA
	vkOEMPlus   = 0xBB
	vkOEMComma  = 0xBC
	vkOEMMinus  = 0xBD
	vkOEMPeriod = 0xBE
	vkOEM2      = 0xBF
	vkOEM3      = 0xC0
	vkOEM4      = 0xDB
	vkOEM5      = 0xDC
	vkOEM6      = 0xDD
	vkOEM7      = 0xDE
)

// nativeKeyTable maps Mac key codes to Windows virtual-key codes.
var nativeKeyTable = map[int]int{
	// Letters
	macA: 'A', macB: 'B', macC: 'C', macD: 'D', macE: 'E', macF: 'F', macG: 'G',
	macH: 'H', macI: 'I', macJ: 'J', macK: 'K', macL: 'L', macM: 'M', macN: 'N',
	macO: 'O', macP: 'P', macQ: 'Q', macR: 'R', macS: 'S', macT: 'T', macU: 'U',
	macV: 'V', macW: 'W', macX: 'X', macY: 'Y', macZ: 'Z',

	// Number row
	mac0: '0', mac1: '1', mac2: '2', mac3: '3', mac4: '4',
	mac5: '5', mac6: '6', mac7: '7', mac8: '8', mac9: '9',

	// Punctuation
	macSpace: vkSpace, macReturn: vkReturn, macDelete: vkBack, macTab: vkTab,
	macEscape: vkEscape, macComma: vkOEMComma, macPeriod: vkOEMPeriod,
	macSlash: vkOEM2, macSemicolon: vkOEM1, macQuote: vkOEM7,
	macLeftBracket: vkOEM4, macRightBracket: vkOEM6, macBackslash: vkOEM5,
	macGrave: vkOEM3, macMinus: vkOEMMinus, macEqual: vkOEMPlus,

	// Modifiers: Option -> Alt, Command -> Windows key
	macShift: vkLShift, macRightShift: vkRShift, macControl: vkLControl,
	macRightControl: vkRControl, macOption: vkLMenu, macRightOption: vkRMenu,
	macCommand: vkLWin, macRightCommand: vkRWin, macCapsLock: vkCapital,

	// Function keys
	macF1: vkF1, macF2: vkF1 + 1, macF3: vkF1 + 2, macF4: vkF1 + 3,
	macF5: vkF1 + 4, macF6: vkF1 + 5, macF7: vkF1 + 6, macF8: vkF1 + 7,
	macF9: vkF1 + 8, macF10: vkF1 + 9, macF11: vkF1 + 10, macF12: vkF1 + 11,

	// Navigation
	macLeftArrow: vkLeft, macRightArrow: vkRight, macDownArrow: vkDown,
	macUpArrow: vkUp, macHome: vkHome, macEnd: vkEnd, macPageUp: vkPrior,
	macPageDown: vkNext, macForwardDel: vkDelete, macHelp: vkInsert,

	// Numpad
	macKPClear: vkNumLock, macKP0: vkNumpad0, macKP1: vkNumpad0 + 1,
	macKP2: vkNumpad0 + 2, macKP3: vkNumpad0 + 3, macKP4: vkNumpad0 + 4,
	macKP5: vkNumpad0 + 5, macKP6: vkNumpad0 + 6, macKP7: vkNumpad0 + 7,
	macKP8: vkNumpad0 + 8, macKP9: vkNumpad0 + 9, macKPDecimal: vkDecimal,
	macKPPlus: vkAdd, macKPMinus: vkSubtract, macKPMultiply: vkMultiply,
	macKPDivide: vkDivide, macKPEnter: vkReturn,
}

// extendedKeys need KEYEVENTF_EXTENDEDKEY so Windows does not confuse them
// with their numpad twins.
var extendedKeys = map[int]bool{
	vkInsert: true, vkDelete: true, vkHome: true, vkEnd: true,
	vkPrior: true, vkNext: true, vkLeft: true, vkRight: true,
	vkUp: true, vkDown: true, vkLWin: true, vkRWin: true,
	vkRControl: true, vkRMenu: true, vkDivide: true,
}
