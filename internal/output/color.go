package output

import "github.com/mattn/go-isatty"

// ResolveColorMode determines the effective isTTY value from the --color
// flag and actual TTY detection:
//   - "never":  always disable colors
//   - "always": always enable colors
//   - "auto":   use the detected isTTY value
func ResolveColorMode(colorMode string, isTTY bool) bool {
	switch colorMode {
	case "never":
		return false
	case "always":
		return true
	default:
		return isTTY
	}
}

// IsTTY reports whether stream is a terminal, including Cygwin and MSYS
// pseudo terminals on Windows. stream is usually a command's stdin, stdout or
// stderr; anything without a file descriptor is not a terminal.
func IsTTY(stream any) bool {
	file, ok := stream.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
