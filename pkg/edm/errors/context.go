package errors

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ParseLocation parses the "file:line:column" form produced by
// Location.String. The file part may itself contain colons.
func ParseLocation(s string) (Location, bool) {
	rest, col, ok := cutNumber(s)
	if !ok {
		return Location{}, false
	}
	file, line, ok := cutNumber(rest)
	if !ok || file == "" {
		return Location{}, false
	}
	loc := Location{File: file, Line: line, Column: col}
	return loc, loc.IsValid()
}

func cutNumber(s string) (string, int, bool) {
	i := strings.LastIndexByte(s, ':')
	if i < 0 {
		return "", 0, false
	}
	n, err := strconv.Atoi(s[i+1:])
	if err != nil || n < 0 {
		return "", 0, false
	}
	return s[:i], n, true
}

// Excerpt renders the source lines within radius of loc, marking the
// located line and column. It returns "" when the file cannot be read or
// the location lies outside it.
func Excerpt(loc Location, radius int) string {
	if !loc.IsValid() {
		return ""
	}
	f, err := os.Open(loc.File)
	if err != nil {
		return ""
	}
	defer f.Close()

	first := max(loc.Line-radius, 1)
	last := loc.Line + radius
	var window []string
	scanner := bufio.NewScanner(f)
	for n := 1; n <= last && scanner.Scan(); n++ {
		if n >= first {
			window = append(window, scanner.Text())
		}
	}
	if scanner.Err() != nil || first+len(window)-1 < loc.Line {
		return ""
	}

	width := len(strconv.Itoa(first + len(window) - 1))
	var sb strings.Builder
	for i, text := range window {
		n := first + i
		marker := " "
		if n == loc.Line {
			marker = ">"
		}
		fmt.Fprintf(&sb, "%s %*d | %s\n", marker, width, n, text)
		if n == loc.Line && loc.Column > 0 {
			fmt.Fprintf(&sb, "  %s | %s^\n", strings.Repeat(" ", width), strings.Repeat(" ", loc.Column-1))
		}
	}
	return sb.String()
}
