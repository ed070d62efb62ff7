// SPDX-License-Identifier: MPL-2.0

package search

import (
	"bufio"
	"errors"
	"io"
	"regexp"
	"strings"
	"unicode"
)

// Scan reads r line by line and calls fn with every accepted line.
//
// A line is accepted when re matches it, or when it does not match and
// invert is set. Lines keep their terminator ("\n" or "\r\n") both for
// matching and when handed to fn; a final unterminated line is still
// scanned. Scan stops at the first read error or the first error returned
// by fn.
func Scan(r io.Reader, re *regexp.Regexp, invert bool, fn func(line string) error) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" && re.MatchString(line) != invert {
			if fnErr := fn(line); fnErr != nil {
				return fnErr
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// Count returns the number of lines Scan would accept.
func Count(r io.Reader, re *regexp.Regexp, invert bool) (int, error) {
	n := 0
	err := Scan(r, re, invert, func(string) error {
		n++
		return nil
	})
	return n, err
}

// TrimLine strips the line terminator and any trailing whitespace.
func TrimLine(line string) string {
	return strings.TrimRightFunc(line, unicode.IsSpace)
}
