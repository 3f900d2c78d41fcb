// Command evds is a small terminal client for the bridge's operations.
// It drives the same domain client the foreign surfaces use, so the URLs,
// validation and error codes it exercises are exactly what library callers
// get.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/evds-bridge/boundary"
	"github.com/wippyai/evds-bridge/errors"
	"github.com/wippyai/evds-bridge/evds"
	"github.com/wippyai/evds-bridge/transport"
)

var cliErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

func main() {
	var (
		op          = flag.String("op", "", "Operation: data|advanced|datagroup|categories|datagroups|serielist")
		series      = flag.String("series", "", "Series code(s), dash-separated for multiple (e.g. TP.DK.USD.S)")
		date        = flag.String("date", "", "Date or date range, DD-MM-YYYY[,DD-MM-YYYY]")
		group       = flag.String("group", "", "Data group code (for -op datagroup)")
		mode        = flag.Uint("mode", 0, "Mode selector (for -op datagroups)")
		code        = flag.String("code", "", "Category or series list code")
		key         = flag.String("key", os.Getenv("EVDS_API_KEY"), "API key (defaults to EVDS_API_KEY)")
		format      = flag.String("format", "json", "Response format: csv|json|xml")
		agg         = flag.String("agg", "avg", "Aggregation: avg|min|max|first|last|sum")
		formula     = flag.String("formula", "level", "Formula: level|pct|diff|ypct|ydiff|yepct|yediff|mavg|msum")
		freq        = flag.String("freq", "daily", "Frequency: daily|business|weekly|twicemonthly|monthly|quarterly|semiannual|annual")
		ascii       = flag.Bool("ascii", false, "Transliterate response to ASCII")
		timeout     = flag.Duration("timeout", transport.DefaultTimeout, "Per-request timeout")
		verbose     = flag.Bool("v", false, "Verbose logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *verbose {
		if err := enableVerboseLogging(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: verbose logging unavailable: %v\n", err)
		}
	}

	client := evds.NewClient(transport.New(&transport.Options{Timeout: *timeout}))

	if *interactive {
		if err := runInteractive(client, *key); err != nil {
			fail(err)
		}
		return
	}

	if *op == "" {
		fmt.Fprintln(os.Stderr, "Usage: evds -op data -series TP.DK.USD.S -date 13-12-2011 -key <api-key>")
		fmt.Fprintln(os.Stderr, "       evds -op categories -key <api-key> -format csv")
		fmt.Fprintln(os.Stderr, "       evds -i  (interactive mode)")
		os.Exit(1)
	}

	body, err := run(client, *op, *series, *date, *group, uint32(*mode), *code, *key, *format, *agg, *formula, *freq, *ascii)
	if err != nil {
		fail(err)
	}
	fmt.Println(body)
}

// enableVerboseLogging installs a development logger in every package that
// logs.
func enableVerboseLogging() error {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	evds.SetLogger(logger)
	transport.SetLogger(logger)
	boundary.SetLogger(logger)
	return nil
}

func fail(err error) {
	msg := fmt.Sprintf("%s (code %d)", errors.MessageOf(err), errors.CodeOf(err))
	if term.IsTerminal(int(os.Stderr.Fd())) {
		msg = cliErrorStyle.Render(msg)
	}
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}

func run(client *evds.Client, op, series, date, group string, mode uint32, code, key, format, agg, formula, freq string, ascii bool) (string, error) {
	ctx := context.Background()

	f, err := evds.ParseFormat(format)
	if err != nil {
		return "", err
	}
	opts := evds.CallOptions{APIKey: key, Format: f, ASCII: ascii}

	switch op {
	case "data":
		return client.GetData(ctx, series, date, opts)

	case "advanced":
		a, ok := aggregations[agg]
		if !ok {
			return "", errors.InvalidEnum("agg", agg, "Aggregation")
		}
		fo, ok := formulas[formula]
		if !ok {
			return "", errors.InvalidEnum("formula", formula, "Formula")
		}
		fr, ok := frequencies[freq]
		if !ok {
			return "", errors.InvalidEnum("freq", freq, "Frequency")
		}
		return client.GetAdvancedData(ctx, series, date, a, fo, fr, opts)

	case "datagroup":
		return client.GetDataGroup(ctx, group, date, opts)

	case "categories":
		return client.GetCategories(ctx, opts)

	case "datagroups":
		return client.GetAdvancedDataGroup(ctx, mode, code, opts)

	case "serielist":
		return client.GetSeriesList(ctx, code, opts)

	default:
		return "", fmt.Errorf("unknown operation %q", op)
	}
}

var aggregations = map[string]evds.Aggregation{
	"avg":   evds.AggregationAverage,
	"min":   evds.AggregationMinimum,
	"max":   evds.AggregationMaximum,
	"first": evds.AggregationBeginning,
	"last":  evds.AggregationEnd,
	"sum":   evds.AggregationCumulative,
}

var formulas = map[string]evds.Formula{
	"level":  evds.FormulaLevel,
	"pct":    evds.FormulaPercentageChange,
	"diff":   evds.FormulaDifference,
	"ypct":   evds.FormulaYearToYearPercentChange,
	"ydiff":  evds.FormulaYearToYearDifference,
	"yepct":  evds.FormulaPercentageChangeByEndOfPreviousYear,
	"yediff": evds.FormulaDifferenceByEndOfPreviousYear,
	"mavg":   evds.FormulaMovingAverage,
	"msum":   evds.FormulaMovingSum,
}

var frequencies = map[string]evds.Frequency{
	"daily":        evds.FrequencyDaily,
	"business":     evds.FrequencyBusiness,
	"weekly":       evds.FrequencyWeeklyFriday,
	"twicemonthly": evds.FrequencyTwiceMonthly,
	"monthly":      evds.FrequencyMonthly,
	"quarterly":    evds.FrequencyQuarterly,
	"semiannual":   evds.FrequencySemiAnnual,
	"annual":       evds.FrequencyAnnual,
}
