package main

import (
	"os"

	"code.cloudfoundry.org/lager"
	"github.com/jessevdk/go-flags"

	"github.com/cargueiro/cargueiro/command"
)

func main() {
	logger := lager.NewLogger("cargueiro")
	logger.RegisterSink(lager.NewWriterSink(os.Stdout, lager.INFO))

	parser := flags.NewParser(&command.Cargueiro, flags.HelpFlag|flags.PassDoubleDash)
	parser.NamespaceDelimiter = "-"

	_, err := parser.Parse()
	if err != nil {
		logger.Error("parsing", err)
		os.Exit(1)
	}

	return
}
