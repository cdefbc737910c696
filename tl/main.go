package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/trustlot/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Shell completion: a no-op unless invoked by the completion hook.
	completer := &complete.Command{
		Sub: map[string]*complete.Command{
			"report": {
				Flags: map[string]complete.Predictor{
					"fund":   predict.Set{"GLD", "SLV", "IAU"},
					"year":   predict.Set{"2021"},
					"format": predict.Set{"markdown", "csv"},
				},
				Args: predict.Files("*.csv"),
			},
			"tx":    {Args: predict.Files("*.csv")},
			"funds": {Flags: map[string]complete.Predictor{"year": predict.Set{"2021"}}},
			"topic": {Args: predict.Set{"readme", "cost-basis", "funds", "input-format"}},
		},
	}
	completer.Complete(path.Base(os.Args[0]))

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
