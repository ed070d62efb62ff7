// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

// Ids of the catalog entries.
const (
	InvalidPatternId Id = iota + 1
	ConfigLoadFailedId
	PathNotFoundId
	PermissionDeniedId
	IsDirectoryId
)

type (
	// Id identifies a catalog entry.
	Id int

	// MarkdownMsg is Markdown text rendered for the user.
	MarkdownMsg string

	// HttpLink is a documentation or reference URL.
	HttpLink string

	// Issue is a catalog entry with extended guidance for a class of failures.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []HttpLink
	}
)

// Id returns the catalog id of the issue.
func (i *Issue) Id() Id {
	return i.id
}

// MarkdownMsg returns the raw Markdown guidance.
func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// DocLinks returns a copy of the reference links.
func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

// Render renders the guidance with the given glamour style ("dark", "light",
// "notty", ...).
func (i *Issue) Render(stylePath string) (string, error) {
	md := string(i.mdMsg)
	if len(i.docLinks) > 0 {
		md += "\n\n## See also\n"
		for _, link := range i.docLinks {
			md += "\n- " + string(link)
		}
	}
	return render(md, stylePath)
}

var (
	render = glamour.Render

	invalidPatternIssue = &Issue{
		id: InvalidPatternId,
		mdMsg: `
# Invalid search pattern

The pattern could not be compiled as a regular expression.

## Things you can try:
- Escape regex metacharacters such as ` + "`.`, `*`, `(`, `[`" + ` with a backslash
- Quote the pattern so your shell does not expand it:
~~~
$ grepr 'foo(bar' file.txt      # invalid: unbalanced parenthesis
$ grepr 'foo\(bar' file.txt     # literal parenthesis
~~~
- Lookarounds and backreferences are not supported (RE2 syntax)`,
		docLinks: []HttpLink{"https://github.com/google/re2/wiki/Syntax"},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration

grepr found a configuration file but could not read or validate it.
Built-in defaults are used instead.

## Things you can try:
- Check the file for CUE or TOML syntax errors
- Only these keys are allowed: ` + "`ignore_case`, `recursive`, `count`, `invert_match`, `exclude_dirs`, `ui.verbose`" + `
- Point grepr at another file:
~~~
$ grepr --config ./grepr.cue PATTERN
~~~`,
	}

	pathNotFoundIssue = &Issue{
		id: PathNotFoundId,
		mdMsg: `
# Path not found

One of the path arguments does not exist. Remaining paths were still searched.

## Things you can try:
- Check the path for typos
- Use ` + "`-`" + ` to read standard input`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied

A file or directory could not be opened for reading. Remaining paths were still searched.

## Things you can try:
- Check the file and directory permissions
- Skip unreadable directories with ` + "`--exclude-dir`",
	}

	isDirectoryIssue = &Issue{
		id: IsDirectoryId,
		mdMsg: `
# Path is a directory

Directories are only searched when recursion is enabled.

## Things you can try:
- Search the directory recursively:
~~~
$ grepr -r PATTERN DIR
~~~`,
	}

	issues = map[Id]*Issue{
		invalidPatternIssue.Id():   invalidPatternIssue,
		configLoadFailedIssue.Id(): configLoadFailedIssue,
		pathNotFoundIssue.Id():     pathNotFoundIssue,
		permissionDeniedIssue.Id(): permissionDeniedIssue,
		isDirectoryIssue.Id():      isDirectoryIssue,
	}
)

// Values returns every catalog entry ordered by id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		out = append(out, i)
	}
	slices.SortFunc(out, func(a, b *Issue) int { return cmp.Compare(a.id, b.id) })
	return out
}

// Get returns the catalog entry for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
