//go:build !linux && !windows && !darwin

package input

// nativeKeyTable is empty on platforms without an injector; every key
// lookup misses and is dropped.
var nativeKeyTable = map[int]int{}
