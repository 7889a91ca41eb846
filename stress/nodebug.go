//go:build !debug

package stress

func debugLog(string, ...any) {}
