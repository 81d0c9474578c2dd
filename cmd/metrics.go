package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/fundsight/fundsight/renderer"
)

type metricsCmd struct {
	fund    string
	summary bool
	asJSON  bool
}

func (*metricsCmd) Name() string     { return "metrics" }
func (*metricsCmd) Synopsis() string { return "compute and display the fund's metrics report" }
func (*metricsCmd) Usage() string {
	return `fsc metrics -fund <fund> [-summary] [-json]

  Recomputes all metrics (PIC, Total Distributions, NAV, DPI, TVPI, RVPI,
  IRR) from the fund's full transaction set and displays them with their
  calculation breakdowns. Undefined values render as n/a.
`
}

func (p *metricsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.fund, "fund", "", "Fund to report on.")
	f.BoolVar(&p.summary, "summary", false, "Show only the summary table, without breakdowns.")
	f.BoolVar(&p.asJSON, "json", false, "Emit the report as JSON instead of markdown.")
}

func (p *metricsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.fund == "" {
		return errorf("Error: -fund is required.")
	}
	ledger, err := loadLedger(p.fund)
	if err != nil {
		return errorf("Error: could not load fund %q: %v", p.fund, err)
	}
	if ledger.Len() == 0 {
		return errorf("Error: fund %q has no transactions.", p.fund)
	}

	report := ledger.Metrics()
	if p.asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return errorf("Error encoding report: %v", err)
		}
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.RenderMetrics(report, renderer.MetricsRenderOptions{SkipBreakdowns: p.summary}))
	fmt.Println()
	return subcommands.ExitSuccess
}
