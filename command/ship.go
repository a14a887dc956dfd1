package command

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/hashicorp/hcl2/hcl"
	"github.com/pkg/errors"

	"github.com/cargueiro/cargueiro/config"
	"github.com/cargueiro/cargueiro/ship"
)

type shipCommand struct {
	Filename  string            `long:"filename" short:"f" required:"true" description:"file containing the shipment definition"`
	Variables map[string]string `long:"var" short:"v" description:"variables to interpolate"`
}

func (c *shipCommand) Execute(args []string) (err error) {
	color.NoColor = false

	cfg, err := parseConfigFile(c.Filename, c.Variables)
	if err != nil {
		return
	}

	return ship.Ship(context.TODO(), cfg.Shipment())
}

func parseConfigFile(filename string, vars map[string]string) (cfg *config.Config, err error) {
	cfg, err = config.ParseFile(filename, vars)
	if err != nil {
		diagsErr, ok := errors.Cause(err).(hcl.Diagnostics)
		if ok {
			fmt.Fprintln(os.Stderr,
				config.PrettyDiagnosticFile(filename, diagsErr[0]))
		}

		err = errors.Wrapf(err,
			"failed to parse shipment definition %s", filename)
		return
	}

	return
}
