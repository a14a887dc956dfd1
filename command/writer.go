package command

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

func writer(output string) (w io.Writer, err error) {
	if output == "-" {
		w = os.Stdout
		return
	}

	w, err = os.Create(output)
	if err != nil {
		err = errors.Wrapf(err,
			"failed creating output file %s", output)
		return
	}

	return
}
