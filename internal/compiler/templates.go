package compiler

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/james-lomax/the-last-compiler/internal/naming"
)

// The placeholder avoids the word that switches on test generation, so a
// fresh spec compiles without tests until its author asks for them.
const placeholderTemplate = `# {{ .Module }}

Describe what the {{ .Module }} module does.

## Usage

The module is exposed as the ` + "`{{ .Command }}`" + ` command once compiled.

## Behaviour

- Inputs:
- Outputs:
- Edge cases:
`

var placeholder = template.Must(template.New("placeholder").Parse(placeholderTemplate))

func renderPlaceholder(id naming.ModuleID) (string, error) {
	var buf bytes.Buffer
	err := placeholder.Execute(&buf, struct {
		Module  string
		Command string
	}{
		Module:  id.String(),
		Command: id.CommandName(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render placeholder for %s: %w", id, err)
	}
	return buf.String(), nil
}
