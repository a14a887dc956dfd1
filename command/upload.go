package command

import (
	"context"

	"github.com/fatih/color"

	"github.com/cargueiro/cargueiro/ftp"
	"github.com/cargueiro/cargueiro/ship"
)

// uploadCommand re-attempts sending an archive that a previously failed
// ship run left behind, without re-archiving anything.
type uploadCommand struct {
	File      string            `long:"file" required:"true" description:"zip file to upload"`
	Filename  string            `long:"filename" short:"f" required:"true" description:"file containing the shipment definition"`
	Variables map[string]string `long:"var" short:"v" description:"variables to interpolate"`
}

func (c *uploadCommand) Execute(args []string) (err error) {
	color.NoColor = false

	cfg, err := parseConfigFile(c.Filename, c.Variables)
	if err != nil {
		return
	}

	remote := cfg.Shipment().Remote

	return ftp.Upload(context.TODO(), c.File,
		ship.Endpoint(remote), remote.Filename)
}
