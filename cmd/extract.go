package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"google.golang.org/genai"

	"github.com/fundsight/fundsight/agent"
	"github.com/fundsight/fundsight/renderer"
)

type extractCmd struct {
	fund  string
	model string
}

func (*extractCmd) Name() string { return "extract" }
func (*extractCmd) Synopsis() string {
	return "extract transactions from unstructured report text with an AI model"
}
func (*extractCmd) Usage() string {
	return `fsc extract -fund <fund> [-model <model>] <file>...

  Sends unstructured report text to a Gemini model and imports the
  transactions it finds. Every extracted transaction goes through the same
  validation as a parsed table row; rejected items are reported as warnings.
  Requires GEMINI_API_KEY in the environment.
`
}

func (p *extractCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.fund, "fund", "", "Fund the extracted transactions belong to.")
	f.StringVar(&p.model, "model", "gemini-2.5-flash", "Model to use for extraction.")
}

func (p *extractCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.fund == "" {
		return errorf("Error: -fund is required.")
	}
	if f.NArg() == 0 {
		return errorf("Error: at least one text file is required.")
	}

	ledger, err := loadLedger(p.fund)
	if err != nil {
		return errorf("Error: could not load fund %q: %v", p.fund, err)
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return errorf("Error creating AI client: %v", err)
	}
	extractor := agent.NewExtractor(p.model)
	if err := extractor.Start(ctx, client); err != nil {
		return errorf("Error starting extraction session: %v", err)
	}

	var imported int
	for _, file := range f.Args() {
		text, err := os.ReadFile(file)
		if err != nil {
			return errorf("Error reading %q: %v", file, err)
		}
		txs, diags, err := extractor.Extract(ctx, string(text), *currency)
		if err != nil {
			return errorf("Error extracting from %q: %v", file, err)
		}
		if err := ledger.Append(txs...); err != nil {
			return errorf("Error appending transactions from %q: %v", file, err)
		}
		imported += len(txs)
		if len(diags) > 0 {
			printMarkdown(renderer.DiagnosticsMarkdown(diags))
		}
	}

	if err := saveLedger(ledger); err != nil {
		return errorf("Error saving fund %q: %v", p.fund, err)
	}
	fmt.Printf("Extracted %d transactions into %q.\n", imported, p.fund)
	return subcommands.ExitSuccess
}
