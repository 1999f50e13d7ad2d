//go:build darwin

package input

// nativeKeyTable is the identity over the Mac codes the source sends.
var nativeKeyTable = func() map[int]int {
	codes := []int{
		macA, macS, macD, macF, macH, macG, macZ, macX, macC, macV, macB, macQ,
		macW, macE, macR, macY, macT, mac1, mac2, mac3, mac4, mac6, mac5, macEqual,
		mac9, mac7, macMinus, mac8, mac0, macRightBracket, macO, macU,
		macLeftBracket, macI, macP, macReturn, macL, macJ, macQuote, macK,
		macSemicolon, macBackslash, macComma, macSlash, macN, macM, macPeriod,
		macTab, macSpace, macGrave, macDelete, macEscape, macRightCommand,
		macCommand, macShift, macCapsLock, macOption, macControl, macRightShift,
		macRightOption, macRightControl, macKPDecimal, macKPMultiply, macKPPlus,
		macKPClear, macKPDivide, macKPEnter, macKPMinus, macKP0, macKP1, macKP2,
		macKP3, macKP4, macKP5, macKP6, macKP7, macKP8, macKP9, macF5, macF6,
		macF7, macF3, macF8, macF9, macF11, macF10, macF12, macHelp, macHome,
		macPageUp, macForwardDel, macF4, macEnd, macF2, macPageDown, macF1,
		macLeftArrow, macRightArrow, macDownArrow, macUpArrow,
	}
	table := make(map[int]int, len(codes))
	for _, c := range codes {
		table[c] = c
	}
	return table
}()
