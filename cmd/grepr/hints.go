// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"golang.org/x/exp/slices"

	"github.com/grepr/grepr/internal/issue"
	"github.com/grepr/grepr/internal/search"
)

// hintStyle lets glamour choose between dark, light and plain rendering.
const hintStyle = "auto"

// hintIDs maps err to the catalog entries that explain it, in a fixed order
// and without duplicates.
func hintIDs(err error) []issue.Id {
	var ids []issue.Id
	var ae *issue.ActionableError
	if errors.As(err, &ae) && ae.Issue != 0 {
		ids = append(ids, ae.Issue)
	}

	for _, c := range []struct {
		target error
		id     issue.Id
	}{
		{search.ErrInvalidPattern, issue.InvalidPatternId},
		{search.ErrIsDirectory, issue.IsDirectoryId},
		{fs.ErrNotExist, issue.PathNotFoundId},
		{fs.ErrPermission, issue.PermissionDeniedId},
	} {
		if errors.Is(err, c.target) && !slices.Contains(ids, c.id) {
			ids = append(ids, c.id)
		}
	}
	return ids
}

// renderHints writes the markdown guidance for err to w. Rendering failures
// are ignored; hints are best effort.
func renderHints(w io.Writer, err error) {
	for _, id := range hintIDs(err) {
		entry := issue.Get(id)
		if entry == nil {
			continue
		}
		rendered, renderErr := entry.Render(hintStyle)
		if renderErr != nil {
			continue
		}
		fmt.Fprint(w, rendered)
	}
}
