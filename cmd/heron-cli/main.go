// Command heron-cli runs table pipelines over delimited text files: load,
// join, filter, project, group/aggregate, then render or export the result.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	heron "github.com/hoshif/heron"
	"github.com/hoshif/heron/internal/config"
	"github.com/hoshif/heron/internal/version"
)

func customUsage() {
	fmt.Fprintf(os.Stderr, "heron table engine CLI (version %s)\n\n", version.Version)
	fmt.Fprintf(os.Stderr, "Usage: heron-cli [options] FILE\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	fmt.Fprintf(os.Stderr, "  --config PATH\n\t\tLoad configuration from a JSON or YAML file\n")
	fmt.Fprintf(os.Stderr, "  --delimiter CHAR\n\t\tField delimiter (default: from config, usually ',')\n")
	fmt.Fprintf(os.Stderr, "  --join FILE --left-key COL --right-key COL\n\t\tInner-join FILE onto the input\n")
	fmt.Fprintf(os.Stderr, "  --filter EXPR\n\t\tKeep rows matching EXPR, e.g. 'Sex==Male' or 'Age>40'\n")
	fmt.Fprintf(os.Stderr, "  --select COLS\n\t\tComma-separated columns to keep, in order\n")
	fmt.Fprintf(os.Stderr, "  --group-by COL --agg RULES\n\t\tAggregate per group; RULES like 'Age:mean,ID:count'\n")
	fmt.Fprintf(os.Stderr, "  --head N\n\t\tKeep at most the first N result rows\n")
	fmt.Fprintf(os.Stderr, "  --preview\n\t\tKeep at most the configured head_rows result rows\n")
	fmt.Fprintf(os.Stderr, "  --out PATH\n\t\tWrite the result as delimited text instead of rendering\n")
	fmt.Fprintf(os.Stderr, "  -v, --version\n\t\tPrint version information and exit\n")
	fmt.Fprintf(os.Stderr, "  -h, --help\n\t\tShow this help message and exit\n")
}

func main() {
	versionFlag := flag.Bool("v", false, "Print version and exit")
	flag.BoolVar(versionFlag, "version", false, "Print version and exit") // alias
	configFlag := flag.String("config", "", "Configuration file (JSON or YAML)")
	delimiterFlag := flag.String("delimiter", "", "Field delimiter")
	joinFlag := flag.String("join", "", "File to inner-join onto the input")
	leftKeyFlag := flag.String("left-key", "", "Join key column in the input")
	rightKeyFlag := flag.String("right-key", "", "Join key column in the joined file")
	filterFlag := flag.String("filter", "", "Row filter expression")
	selectFlag := flag.String("select", "", "Comma-separated columns to keep")
	groupByFlag := flag.String("group-by", "", "Column to group by")
	aggFlag := flag.String("agg", "", "Aggregation rules, e.g. 'Age:mean,ID:count'")
	headFlag := flag.Int("head", 0, "Keep at most the first N result rows")
	previewFlag := flag.Bool("preview", false, "Keep at most the configured head_rows result rows")
	outFlag := flag.String("out", "", "Write the result as delimited text to PATH")

	//nolint:reassign // Standard Go pattern for customizing flag usage message
	flag.Usage = customUsage

	flag.Parse()

	if *versionFlag {
		fmt.Print(version.Info().String())
		return
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := resolveConfig(*configFlag, *delimiterFlag)
	if err != nil {
		fatal(err)
	}
	config.SetGlobalConfig(cfg)

	if cfg.VerboseLogging {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	head := *headFlag
	if *previewFlag && head == 0 {
		head = cfg.HeadRows
	}

	result, err := runPipeline(flag.Arg(0), cfg, pipelineArgs{
		joinFile: *joinFlag,
		leftKey:  *leftKeyFlag,
		rightKey: *rightKeyFlag,
		filter:   *filterFlag,
		selects:  *selectFlag,
		groupBy:  *groupByFlag,
		agg:      *aggFlag,
		head:     head,
	})
	if err != nil {
		fatal(err)
	}

	if *outFlag != "" {
		if err := writeResult(*outFlag, result, cfg); err != nil {
			fatal(err)
		}
		return
	}

	render(result)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "heron-cli: %v\n", err)
	os.Exit(1)
}

// resolveConfig layers configuration: file, then environment, then flags.
func resolveConfig(path, delimiter string) (config.Config, error) {
	cfg := config.GetGlobalConfig()

	if path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return config.Config{}, fmt.Errorf("loading config %s: %w", path, err)
		}
		cfg = loaded
	}

	env := config.LoadFromEnv()
	if env.Delimiter != config.DefaultDelimiter {
		cfg.Delimiter = env.Delimiter
	}
	if env.HeadRows != config.DefaultHeadRows {
		cfg.HeadRows = env.HeadRows
	}
	if env.StrictComparisons {
		cfg.StrictComparisons = true
	}
	if env.LogCoercionFailures {
		cfg.LogCoercionFailures = true
	}
	if env.VerboseLogging {
		cfg.VerboseLogging = true
	}

	if delimiter != "" {
		cfg.Delimiter = delimiter
	}

	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

type pipelineArgs struct {
	joinFile string
	leftKey  string
	rightKey string
	filter   string
	selects  string
	groupBy  string
	agg      string
	head     int
}

func runPipeline(path string, cfg config.Config, args pipelineArgs) (*heron.Table, error) {
	delimiter := []rune(cfg.Delimiter)[0]

	result, err := heron.ReadCSV(path, heron.WithDelimiter(delimiter))
	if err != nil {
		return nil, err
	}

	if args.joinFile != "" {
		right, err := heron.ReadCSV(args.joinFile, heron.WithDelimiter(delimiter))
		if err != nil {
			return nil, err
		}
		result, err = result.Join(right, &heron.JoinOptions{
			Type:     heron.InnerJoin,
			LeftKey:  args.leftKey,
			RightKey: args.rightKey,
		})
		if err != nil {
			return nil, err
		}
	}

	if args.filter != "" {
		result, err = applyFilter(result, args.filter)
		if err != nil {
			return nil, err
		}
	}

	if args.selects != "" {
		result, err = result.Project(splitList(args.selects)...)
		if err != nil {
			return nil, err
		}
	}

	if args.groupBy != "" {
		rules, err := parseAggRules(args.agg)
		if err != nil {
			return nil, err
		}
		gb, err := result.GroupBy(args.groupBy)
		if err != nil {
			return nil, err
		}
		result, err = gb.Agg(rules...)
		if err != nil {
			return nil, err
		}
	}

	if args.head > 0 {
		result = result.Head(args.head)
	}

	return result, nil
}

// filterOps in match order: two-character operators before their prefixes.
var filterOps = []string{"==", "!=", ">=", "<=", ">", "<"}

// applyFilter parses an expression like "Sex==Male" or "Age>40" and keeps the
// matching rows. Equality compares text; ordered operators compare numbers.
func applyFilter(t *heron.Table, expr string) (*heron.Table, error) {
	for _, op := range filterOps {
		idx := strings.Index(expr, op)
		if idx <= 0 {
			continue
		}

		column := strings.TrimSpace(expr[:idx])
		operand := strings.TrimSpace(expr[idx+len(op):])

		series, err := t.Column(column)
		if err != nil {
			return nil, err
		}

		var mask []bool
		switch op {
		case "==":
			mask = series.Eq(operand)
		case "!=":
			mask = series.Ne(operand)
		default:
			x, err := strconv.ParseFloat(operand, 64)
			if err != nil {
				return nil, fmt.Errorf("filter operand %q is not numeric: %w", operand, err)
			}
			mask, err = series.Compare(compareOpFor(op), x)
			if err != nil {
				return nil, err
			}
		}

		return t.FilterByMask(mask)
	}

	return nil, fmt.Errorf("filter %q has no operator (expected one of %s)", expr, strings.Join(filterOps, " "))
}

func compareOpFor(op string) heron.CompareOp {
	switch op {
	case ">":
		return heron.OpGt
	case ">=":
		return heron.OpGe
	case "<":
		return heron.OpLt
	default:
		return heron.OpLe
	}
}

// parseAggRules parses "Age:mean,ID:count" into aggregation rules.
func parseAggRules(spec string) ([]heron.AggRule, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, fmt.Errorf("--group-by requires --agg rules like 'Age:mean,ID:count'")
	}

	parts := splitList(spec)
	rules := make([]heron.AggRule, 0, len(parts))
	for _, part := range parts {
		column, fn, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("aggregation rule %q is not of the form COLUMN:FUNC", part)
		}
		rules = append(rules, heron.AggRule{
			Column: strings.TrimSpace(column),
			Func:   strings.TrimSpace(fn),
		})
	}
	return rules, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func writeResult(path string, t *heron.Table, cfg config.Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	delimiter := []rune(cfg.Delimiter)[0]
	return heron.WriteCSV(f, t, heron.WithDelimiter(delimiter))
}

func render(t *heron.Table) {
	w := tablewriter.NewWriter(os.Stdout)
	w.SetHeader(t.Columns())
	w.SetAutoFormatHeaders(false)
	w.SetAutoWrapText(false)

	cols := t.Columns()
	data := t.Export()
	row := make([]string, len(cols))
	for i := 0; i < t.Len(); i++ {
		for j, name := range cols {
			row[j] = data[name][i]
		}
		w.Append(row)
	}
	w.Render()

	rows, width := t.Shape()
	fmt.Printf("[%d rows x %d columns]\n", rows, width)
}