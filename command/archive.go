package command

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/cargueiro/cargueiro/zip"
)

type archiveCommand struct {
	Source   string `long:"source"   required:"true" description:"directory to archive"`
	Output   string `long:"output"   required:"true" description:"where to write the zip file to"`
	Manifest string `long:"manifest" description:"where to write the archive manifest to ('-' for stdout)"`
}

func (c *archiveCommand) Execute(args []string) (err error) {
	ctx := context.TODO()

	entries, err := zip.Archive(ctx, c.Source, c.Output)
	if err != nil {
		return
	}

	if c.Manifest == "" {
		return
	}

	manifest, err := zip.NewManifestV1(ctx, c.Output, entries)
	if err != nil {
		return
	}

	w, err := writer(c.Manifest)
	if err != nil {
		return
	}

	b, err := yaml.Marshal(manifest)
	if err != nil {
		return
	}

	_, err = fmt.Fprintf(w, "%s", string(b))
	if err != nil {
		err = errors.Wrapf(err,
			"failed writing archive manifest to %s", c.Manifest)
		return
	}

	return
}
