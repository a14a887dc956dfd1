package config

import (
	"io/ioutil"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/hashicorp/hcl2/hcl"
)

func PrettyDiagnosticFile(filename string, diag *hcl.Diagnostic) (res string) {
	file, err := os.Open(filename)
	if err != nil {
		panic(err)
	}

	defer file.Close()

	content, err := ioutil.ReadAll(file)
	if err != nil {
		panic(err)
	}

	return PrettyDiagnostic(string(content), diag)
}

// PrettyDiagnostic generates a human-readable pretty diagnostic, pointing
// at the offending range of the shipment definition.
//
func PrettyDiagnostic(content string, diag *hcl.Diagnostic) (res string) {
	var (
		lines = strings.Split(content, "\n")
		red   = color.New(color.FgRed, color.Bold).SprintFunc()
	)

	width := diag.Subject.End.Column - diag.Subject.Start.Column
	if width < 1 {
		width = 1
	}

	marker := strings.Repeat(" ", diag.Subject.Start.Column-1) +
		strings.Repeat("^", width)

	idx := diag.Subject.End.Line
	lines = append(lines[:idx], append([]string{red(marker)}, lines[idx:]...)...)

	res = strings.Join(lines, "\n")
	return
}
