package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/fundsight/fundsight/cmd"
)

func main() {
	// Shell completion runs first: when invoked by the shell's completion
	// hook this call prints candidates and exits.
	completion().Complete("fsc")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	fundFlags := map[string]complete.Predictor{
		"fund": predict.Something,
	}
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"db":       predict.Files("*.db"),
			"currency": predict.Set{"USD", "EUR", "GBP"},
		},
		Sub: map[string]*complete.Command{
			"import": {
				Flags: fundFlags,
				Args:  predict.Or(predict.Files("*.csv"), predict.Files("*.xlsx")),
			},
			"extract": {Flags: fundFlags, Args: predict.Files("*")},
			"metrics": {Flags: fundFlags},
			"tx":      {Flags: fundFlags},
			"export":  {Flags: fundFlags},
			"fmt":     {Flags: fundFlags, Args: predict.Files("*.jsonl")},
			"load":    {Flags: fundFlags, Args: predict.Files("*.jsonl")},
			"funds":   {},
			"topic":   {Args: predict.Set{"readme", "metrics", "import", "adjustments"}},
		},
	}
}
