//go:build !debug

package debug

func Printf(string, ...any) {}

const On = false
