package prompt

import "text/template"

// instructionTemplate is the fixed instruction block handed to the agent.
// Its structure never varies between calls; only the bound values do.
const instructionTemplate = `
Read the spec and consider the weaknesses of spec: is it well defined enough to implement in a single python module? Are there any important unanswered questions? Are there any things you don't know how to do? Are any of these blockers to proceeding?

If no, Stop, and summarise why you cannot yet implement this spec as an error.

If yes, describe what we need to do to implement this module, then implement it.

The module is always {{ .ModuleFile }}
{{ if .TestStrategy }}
If a test strategy is specified, implement it in {{ .TestFile }}
{{ end }}
update {{ .Manifest }} to add the new module entry:

    [{{ .Section }}]
    {{ .EntryLine }}

The {{ .CommandName }} command must call the {{ .EntryFunction }}() function of the module.

This script should be sufficient to implement the module, you must only add the {{ .ModuleFile }} module{{ if .TestStrategy }} (and its tests){{ end }}, and edit the {{ .Manifest }} file.
`

// specTrailer introduces the verbatim spec content after the instructions.
const specTrailer = "\n\nHere is the specification:\n\n"

var instructions = template.Must(template.New("instructions").Parse(instructionTemplate))

// templateData is the set of bindings the instruction template sees.
type templateData struct {
	ModuleName    string
	CommandName   string
	ModuleFile    string
	TestFile      string
	TestStrategy  bool
	Manifest      string
	Section       string
	EntryLine     string
	EntryFunction string
}
