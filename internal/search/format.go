// SPDX-License-Identifier: MPL-2.0

package search

import (
	"fmt"
	"io"

	"github.com/grepr/grepr/pkg/types"
)

// Formatter renders accepted lines and counts.
//
// Output is prefixed with "<file>: " unless the run has a single source or
// the source is stdin.
type Formatter struct {
	w            io.Writer
	singleSource bool
}

// NewFormatter creates a Formatter writing to w. singleSource must be fixed
// before the first source is rendered.
func NewFormatter(w io.Writer, singleSource bool) *Formatter {
	return &Formatter{w: w, singleSource: singleSource}
}

// Line prints one accepted line of path, without terminator or trailing
// whitespace.
func (f *Formatter) Line(path types.SourcePath, line string) error {
	_, err := fmt.Fprintln(f.w, f.prefix(path)+TrimLine(line))
	return err
}

// Count prints the match count of path.
func (f *Formatter) Count(path types.SourcePath, n int) error {
	_, err := fmt.Fprintf(f.w, "%s%d\n", f.prefix(path), n)
	return err
}

func (f *Formatter) prefix(path types.SourcePath) string {
	if f.singleSource || path.IsStdin() {
		return ""
	}
	return path.String() + ": "
}
