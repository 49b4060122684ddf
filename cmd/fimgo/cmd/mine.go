package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/hupe1980/fimgo"
	"github.com/hupe1980/fimgo/fimi"
	"github.com/hupe1980/fimgo/sink"
	"github.com/hupe1980/fimgo/sink/bolt"
)

type mineFlags struct {
	k         int
	workers   int
	breadth   int
	groups    int
	group     int
	starters  []int32
	sorted    bool
	benchmark bool
	boltRun   string
	verbose   bool
	jsonLog   bool
	progress  time.Duration
}

var mineOpts mineFlags

var mineCmd = &cobra.Command{
	Use:   "mine [flags] <input> <minsup> [output]",
	Short: "Mine closed frequent itemsets",
	Long: `Mine the closed itemsets of <input> supported by at least <minsup> transactions.

<input> and [output] are local paths, s3://bucket/key or minio://host/bucket/key.
Names ending in .zst or .lz4 are (de)compressed on the fly. Without [output],
patterns go to stdout as "support<TAB>items" lines. With --bolt-run, [output]
is a bbolt database receiving the patterns under that run name.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runMine,
}

func init() {
	addMineFlags(mineCmd.Flags(), &mineOpts)
}

func addMineFlags(f *pflag.FlagSet, o *mineFlags) {
	f.IntVarP(&o.k, "top-k", "k", 0, "Keep only the k best patterns of every item (0 = all closed patterns)")
	f.IntVarP(&o.workers, "workers", "t", 0, "Worker count (default GOMAXPROCS)")
	f.IntVar(&o.breadth, "breadth", -1, "Root extensions expanded before the workers start (0 = all, -1 = none)")
	f.IntVar(&o.groups, "groups", 0, "Split the root extensions into this many groups (0 = no split)")
	f.IntVar(&o.group, "group", 0, "Group explored when --groups is set")
	f.Int32SliceVar(&o.starters, "starters", nil, "Only explore patterns containing one of these items")
	f.BoolVarP(&o.sorted, "sort-items", "s", false, "Output the items of every pattern in ascending order")
	f.BoolVarP(&o.benchmark, "benchmark", "b", false, "Count patterns without writing them")
	f.StringVar(&o.boltRun, "bolt-run", "", "Store patterns in the bbolt database [output] under this run name")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "Log progress and statistics")
	f.BoolVar(&o.jsonLog, "json-log", false, "Log as JSON")
	f.DurationVar(&o.progress, "progress", 10*time.Second, "Minimum delay between progress lines")
}

func (o *mineFlags) options(f *pflag.FlagSet) []fimgo.Option {
	opts := []fimgo.Option{
		fimgo.WithProgressInterval(o.progress),
	}
	if f.Changed("workers") {
		opts = append(opts, fimgo.WithWorkers(o.workers))
	}
	if o.k != 0 {
		opts = append(opts, fimgo.WithTopK(o.k))
	}
	if o.breadth >= 0 {
		opts = append(opts, fimgo.WithBreadth(o.breadth))
	}
	if o.groups != 0 {
		opts = append(opts, fimgo.WithGroup(o.groups, o.group))
	}
	if len(o.starters) > 0 {
		opts = append(opts, fimgo.WithStarters(o.starters...))
	}
	if o.sorted {
		opts = append(opts, fimgo.WithSortedItems())
	}

	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelInfo
	}
	if o.jsonLog {
		opts = append(opts, fimgo.WithLogger(fimgo.NewJSONLogger(level)))
	} else {
		opts = append(opts, fimgo.WithLogLevel(level))
	}
	return opts
}

func runMine(cmd *cobra.Command, args []string) error {
	minSupport, err := parseMinSupport(args[1])
	if err != nil {
		return err
	}

	m, err := fimgo.New(minSupport, mineOpts.options(cmd.Flags())...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	in, err := locate(ctx, args[0])
	if err != nil {
		return err
	}

	var output string
	if len(args) == 3 {
		output = args[2]
	}
	out, err := openOutput(ctx, cmd.OutOrStdout(), output, &mineOpts)
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := m.Mine(ctx, fimi.ReadBlob(ctx, in.store, in.name), out)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "%d patterns from %d transactions (%d frequent items) in %s\n",
		res.Patterns, res.Transactions, res.FrequentItems, time.Since(start).Round(time.Millisecond))
	if mineOpts.verbose {
		fmt.Fprint(cmd.ErrOrStderr(), formatStats(res.Stats))
	}
	return nil
}

func parseMinSupport(arg string) (int, error) {
	v, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid minimum support %q", arg)
	}
	return v, nil
}

func openOutput(ctx context.Context, stdout io.Writer, output string, o *mineFlags) (sink.Collector, error) {
	switch {
	case o.benchmark:
		return sink.NewCount(), nil
	case o.boltRun != "":
		if output == "" || strings.Contains(output, "://") {
			return nil, fmt.Errorf("--bolt-run needs a local database path as output")
		}
		return bolt.Open(output, o.boltRun)
	case output == "" || output == "-":
		return sink.NewWriter(unclosable{stdout}), nil
	}

	loc, err := locate(ctx, output)
	if err != nil {
		return nil, err
	}
	return fimi.CreateBlob(ctx, loc.store, loc.name)
}

// unclosable keeps sink.Writer from closing stdout.
type unclosable struct{ io.Writer }
