// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"sort"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

const (
	PluginSourceConflictId Id = iota + 1
	PluginNotFoundId
	CommandNotFoundId
	InvalidCommandId
	ManifestMismatchId
	ManifestParseErrorId
	ConfigLoadFailedId
	CommandHelpNotFoundId
	ScriptExecutionFailedId
)

type (
	Id int

	MarkdownMsg string

	HttpLink string

	Issue struct {
		id       Id          // ID used to lookup the issue
		mdMsg    MarkdownMsg // Markdown text that will be rendered
		docLinks []HttpLink
		extLinks []HttpLink // external links that might be useful for the user
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue with glamour using stylePath ("auto", "dark",
// "light", "ascii" or a style file).
func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n## See also\n"
		for _, link := range i.docLinks {
			extraMd += "- " + string(link) + "\n"
		}
		for _, link := range i.extLinks {
			extraMd += "- " + string(link) + "\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	pluginSourceConflictIssue = &Issue{
		id: PluginSourceConflictId,
		mdMsg: `
# Plugin declared twice!

A plugin must be declared either by name (` + "`plugin`" + `) or by directory
(` + "`path`" + `), never both and never neither.

## Things you can try:
- Keep only one of the two settings:
~~~cue
plugins: [{path: "./tools/deploy"}]
~~~
- Or, from the command line, pass only one of ` + "`--plugin`" + ` and ` + "`--path`" + `.`,
	}

	pluginNotFoundIssue = &Issue{
		id: PluginNotFoundId,
		mdMsg: `
# Plugin not found!

The plugin name could not be resolved to a directory.

## Search locations (in order of precedence):
1. Directories listed in ` + "`plugin_dirs`" + ` in your config file
2. ./plugins
3. The plugins directory next to your config file

## Things you can try:
- Check the spelling of the plugin name
- Point at the plugin directory directly:
~~~
$ plugmux run --path ./path/to/plugin
~~~`,
	}

	commandNotFoundIssue = &Issue{
		id: CommandNotFoundId,
		mdMsg: `
# Command not found!

No handler, router or alias matched the command you typed.

## Things you can try:
- List the available commands:
~~~
$ plugmux run --path ./my-plugin help
~~~
- Add a handler script ` + "`<commands>/<name>.sh`" + ` and a doc file ` + "`<commands>/<name>.md`" + `
- Map the name you typed to an existing command in ` + "`aliases.json`",
	}

	invalidCommandIssue = &Issue{
		id: InvalidCommandId,
		mdMsg: `
# Commands cannot start with "-"!

The first argument after the plugin is the command name. It looked like a flag.

## Things you can try:
- Put the command name before any flags:
~~~
$ plugmux run --path ./my-plugin deploy --force
~~~`,
	}

	manifestMismatchIssue = &Issue{
		id: ManifestMismatchId,
		mdMsg: `
# Plugin name does not match its manifest!

The plugin was declared under one name but its manifest declares another.

## Things you can try:
- Fix the ` + "`name`" + ` field in ` + "`plugin.cue`" + ` or ` + "`plugin.toml`" + `
- Declare the plugin with the name from its manifest`,
	}

	manifestParseErrorIssue = &Issue{
		id: ManifestParseErrorId,
		mdMsg: `
# Failed to parse the plugin manifest!

## Example plugin.toml:
~~~toml
name = "deploy"
version = "1.4.0"
description = "Ship things"
~~~

## Example plugin.cue:
~~~cue
name:    "deploy"
version: "1.4.0"
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

plugmux could not load its configuration file. Defaults are used instead.

## Things you can try:
- Check the CUE syntax of your config file
- Print the effective configuration:
~~~
$ plugmux config show
~~~
- Write a fresh default file:
~~~
$ plugmux config init
~~~`,
	}

	commandHelpNotFoundIssue = &Issue{
		id: CommandHelpNotFoundId,
		mdMsg: `
# No documentation for this command!

The command exists but has no ` + "`<name>.md`" + ` file next to it.

## Things you can try:
- Add ` + "`<commands>/<name>.md`" + `; line 1 is the title, line 3 the summary`,
	}

	scriptExecutionFailedIssue = &Issue{
		id: ScriptExecutionFailedId,
		mdMsg: `
# Command script failed!

## Things you can try:
- Re-run with ` + "`--verbose`" + ` to see each dispatch step
- Check the script syntax; plugmux runs scripts on an embedded POSIX shell`,
	}

	issues = map[Id]*Issue{
		pluginSourceConflictIssue.Id():  pluginSourceConflictIssue,
		pluginNotFoundIssue.Id():        pluginNotFoundIssue,
		commandNotFoundIssue.Id():       commandNotFoundIssue,
		invalidCommandIssue.Id():        invalidCommandIssue,
		manifestMismatchIssue.Id():      manifestMismatchIssue,
		manifestParseErrorIssue.Id():    manifestParseErrorIssue,
		configLoadFailedIssue.Id():      configLoadFailedIssue,
		commandHelpNotFoundIssue.Id():   commandHelpNotFoundIssue,
		scriptExecutionFailedIssue.Id(): scriptExecutionFailedIssue,
	}
)

// Values returns every known issue ordered by Id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		out = append(out, i)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].id < out[b].id })
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
