package internal

import (
	"runtime"
	"strings"
)

// Origin resolves a program counter to the import path of the package that
// produced it, plus the source line number. A zero pc yields zero values.
func Origin(pc uintptr) (target string, line int) {
	if pc == 0 {
		return "", 0
	}

	frames := runtime.CallersFrames([]uintptr{pc})
	frame, _ := frames.Next()
	if frame.Function == "" {
		return "", frame.Line
	}

	return packagePath(frame.Function), frame.Line
}

// packagePath strips the function name and receiver from a fully qualified
// function name: "a/b/c.(*T).m" becomes "a/b/c", "main.main" becomes "main".
func packagePath(fn string) string {
	slash := strings.LastIndexByte(fn, '/')
	dot := strings.IndexByte(fn[slash+1:], '.')
	if dot < 0 {
		return fn
	}
	return fn[:slash+1+dot]
}
