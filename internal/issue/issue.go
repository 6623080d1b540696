// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

const (
	CatalogNotFoundId Id = iota + 1
	CatalogParseErrorId
	DuplicateFormatId
	InvalidFormatId
	UnknownIdentifierId
	EmissionFailedId
	ConfigLoadFailedId
	InvalidPatternId
	PermissionDeniedId
	FormatNotFoundId
)

type (
	Id int

	MarkdownMsg string

	HttpLink string

	Renderer interface {
		Render(in string, stylePath string) (string, error)
	}

	Issue struct {
		id       Id          // ID used to lookup the issue
		mdMsg    MarkdownMsg // Markdown text that will be rendered
		extLinks []HttpLink  // external links that might be useful for the user
	}
)

var (
	render = glamour.Render

	catalogNotFoundIssue = &Issue{
		id: CatalogNotFoundId,
		mdMsg: `
# No format catalog found!

None of the arguments matched a catalog file.

## Things you can try:
- Check the path or the glob pattern, quoting it so the shell does not expand it:
~~~
$ fmtgen generate 'formats/**/*.cue'
~~~

- Catalog files are recognized by extension: ` + "`.cue`, `.json`, `.yaml`, `.yml` and `.toml`" + `.`,
	}

	catalogParseErrorIssue = &Issue{
		id: CatalogParseErrorId,
		mdMsg: `
# Failed to parse the format catalog!

A catalog file has a syntax error or does not match the catalog schema.

## Common issues:
- Channel specs must look like ` + "`UN8`, `SP16`, `F32` or `X8`" + `
- Exactly four swizzles from ` + "`X Y Z W 0 1 _`" + `
- At most four channels per format
- Unknown fields are rejected

## Example entry:
~~~cue
formats: [{
	name:       "R8G8B8A8_UNORM"
	layout:     "plain"
	block:      {width: 1, height: 1, depth: 1}
	colorspace: "RGB"
	channels:   ["UN8", "UN8", "UN8", "UN8"]
	swizzles:   ["X", "Y", "Z", "W"]
}]
~~~`,
		extLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	duplicateFormatIssue = &Issue{
		id: DuplicateFormatId,
		mdMsg: `
# Duplicate format entries!

The same format name is defined more than once across the catalog inputs.
Nothing was written.

## Things you can try:
- Remove one of the entries named in the error
- Make sure a glob does not match both a file and its backup copy`,
	}

	invalidFormatIssue = &Issue{
		id: InvalidFormatId,
		mdMsg: `
# Invalid format entry!

An entry passed the schema but is inconsistent with itself or with the rest of
the catalog.

## Common issues:
- A swizzle reads a channel slot that is empty
- The big-endian channels do not add up to the same block size
- A pure integer format mixes pure and non-pure channels
- ` + "`linear_equivalent`" + ` points at a format that does not exist or is already linked`,
	}

	unknownIdentifierIssue = &Issue{
		id: UnknownIdentifierId,
		mdMsg: `
# Format missing from the identifier enumeration!

A catalog format has no numeric identifier in the enumeration given with
` + "`--enum`" + `.

## Things you can try:
- Add the format to the enumeration file
- Drop ` + "`--enum`" + ` to number the formats alphabetically after ` + "`NONE`",
	}

	emissionFailedIssue = &Issue{
		id: EmissionFailedId,
		mdMsg: `
# Failed to write the generated files!

The tables were computed but could not be written. Existing outputs were left
untouched.

## Things you can try:
- Check that the output directory exists and is writable
- Check free disk space`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

## Things you can try:
- Show where fmtgen looks for its configuration:
~~~
$ fmtgen config path
~~~

- Print the effective configuration:
~~~
$ fmtgen config show
~~~

- Write a fresh default file:
~~~
$ fmtgen config dump > fmtgen.cue
~~~`,
	}

	invalidPatternIssue = &Issue{
		id: InvalidPatternId,
		mdMsg: `
# Invalid glob pattern!

Catalog arguments may use ` + "`*`, `?`, `[...]`, `{a,b}` and `**`" + `.
Check for an unbalanced bracket or brace.`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

fmtgen could not read a catalog or write an output.

## Things you can try:
- Check file permissions:
~~~
$ ls -la <file>
~~~

- Write to a directory you own with ` + "`--out-dir`",
	}

	formatNotFoundIssue = &Issue{
		id: FormatNotFoundId,
		mdMsg: `
# Format not found!

The requested format is not defined by any of the given catalogs.

## Things you can try:
- List the formats the catalogs define:
~~~
$ fmtgen list 'formats/*.cue'
~~~

- Format names are upper case, e.g. ` + "`R8G8B8A8_UNORM`",
	}

	issues = map[Id]*Issue{
		catalogNotFoundIssue.Id():   catalogNotFoundIssue,
		catalogParseErrorIssue.Id(): catalogParseErrorIssue,
		duplicateFormatIssue.Id():   duplicateFormatIssue,
		invalidFormatIssue.Id():     invalidFormatIssue,
		unknownIdentifierIssue.Id(): unknownIdentifierIssue,
		emissionFailedIssue.Id():    emissionFailedIssue,
		configLoadFailedIssue.Id():  configLoadFailedIssue,
		invalidPatternIssue.Id():    invalidPatternIssue,
		permissionDeniedIssue.Id():  permissionDeniedIssue,
		formatNotFoundIssue.Id():    formatNotFoundIssue,
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the Markdown message with the given glamour style.
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also:\n")
		for _, link := range i.extLinks {
			md.WriteString("- [" + string(link) + "](" + string(link) + ")\n")
		}
	}
	return render(md.String(), stylePath)
}

// Values returns every issue ordered by Id.
func Values() []*Issue {
	values := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		values = append(values, i)
	}
	slices.SortFunc(values, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return values
}

// Get returns the issue with the given Id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
