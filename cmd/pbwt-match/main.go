package main

//
// pbwt-match
//
// Finds long matches between haplotypes, either all within a single
// reference panel or between a reference panel and a set of query
// haplotypes, using the positional Burrows-Wheeler transform.
//
// Examples:
//
//    pbwt-match -panel ref.pbwt -mode within -L 100 -out matches.txt
//    pbwt-match -panel ref.pbwt -query q.pbwt -mode sweep -L 50 -out matches.txt
//    pbwt-match -panel ref.pbwt -query q.pbwt -mode sparse -n-sparse 8 -out matches.txt
//

import (
	"compress/gzip"
	"context"
	"flag"
	"io"
	"os"
	"strings"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/pbwt/encoding/pbwtio"
	"github.com/grailbio/pbwt/internal/panelcache"
	"github.com/grailbio/pbwt/pbwt"
)

type cmdFlags struct {
	panelPath      string
	queryPath      string
	mode           string
	projectionPath string
	outPath        string
	cacheDir       string

	l       int
	nSparse int
	check   bool
	stats   bool
}

func openPanel(ctx context.Context, cacheDir, path string) *pbwtio.MemPanel {
	local, err := panelcache.Fetch(cacheDir, path)
	if err != nil {
		log.Panicf("pbwt-match: fetch %s: %v", path, err)
	}
	p, err := pbwtio.ReadPanel(ctx, local)
	if err != nil {
		log.Panicf("pbwt-match: read %s: %v", local, err)
	}
	return p
}

func main() {
	var flags cmdFlags
	flag.StringVar(&flags.panelPath, "panel", "", "Reference panel file (required), written by pbwtio.WritePanel. May be an s3:// URL.")
	flag.StringVar(&flags.queryPath, "query", "", "Query panel file. Required for all modes except 'within'.")
	flag.StringVar(&flags.mode, "mode", "within",
		"Matching algorithm: within (set-maximal within-panel matches, or threshold matches if -L>0), naive, indexed, sweep, sparse, or projected.")
	flag.StringVar(&flags.projectionPath, "projection", "", "Site list file for -mode=projected, one site index per line.")
	flag.StringVar(&flags.outPath, "out", "-", "Output path for reported matches; '-' means stdout. A .gz suffix gzip-compresses the output.")
	flag.StringVar(&flags.cacheDir, "cache-dir", os.TempDir()+"/pbwt-match-cache", "Local directory to cache s3:// panel downloads in.")
	flag.IntVar(&flags.l, "L", 0, "Minimum match length in sites; 0 means set-maximal matches only.")
	flag.IntVar(&flags.nSparse, "n-sparse", 1, "Number of interleaved sub-panels for -mode=sparse.")
	flag.BoolVar(&flags.check, "check", false, "Verify every reported match against the source haplotypes before reporting it.")
	flag.BoolVar(&flags.stats, "stats", false, "Accumulate a match-length histogram instead of reporting individual matches.")
	flag.Parse()

	cleanup := grail.Init()
	defer cleanup()
	ctx := vcontext.Background()

	if flags.panelPath == "" {
		log.Panic("pbwt-match: -panel is required")
	}
	ref := openPanel(ctx, flags.cacheDir, flags.panelPath)

	var query *pbwtio.MemPanel
	if flags.queryPath != "" {
		query = openPanel(ctx, flags.cacheDir, flags.queryPath)
	}

	cfg := pbwt.Config{L: flags.l, NSparse: flags.nSparse, Check: flags.check, Stats: flags.stats}
	if flags.check {
		refHaps, err := ref.Haplotypes()
		if err != nil {
			log.Panicf("pbwt-match: %v", err)
		}
		cfg.CheckHapsA = refHaps
		cfg.N = ref.NumSites()
		cfg.CheckHapsB = refHaps
		if query != nil {
			queryHaps, err := query.Haplotypes()
			if err != nil {
				log.Panicf("pbwt-match: %v", err)
			}
			cfg.CheckHapsB = queryHaps
		}
	}

	var out io.Writer = os.Stdout
	if flags.outPath != "-" {
		f, err := os.Create(flags.outPath)
		if err != nil {
			log.Panicf("pbwt-match: create %s: %v", flags.outPath, err)
		}
		defer func() { _ = f.Close() }() // nolint: errcheck
		out = f
		if strings.HasSuffix(flags.outPath, ".gz") {
			gw := gzip.NewWriter(f)
			defer func() { _ = gw.Close() }() // nolint: errcheck
			out = gw
		}
	}

	var histogram *pbwt.Histogram
	report := pbwt.NewTextReporter(out)
	if flags.stats {
		histogram = pbwt.NewHistogram()
		report = histogram.Reporter()
	}

	if err := run(ctx, ref, query, flags, cfg, report); err != nil {
		log.Panicf("pbwt-match: %v", err)
	}

	if histogram != nil {
		histogram.Do(func(length int, count int64) bool {
			log.Printf("length=%d count=%d", length, count)
			return true
		})
	}
	log.Printf("pbwt-match: done")
}

func run(ctx context.Context, ref, query *pbwtio.MemPanel, flags cmdFlags, cfg pbwt.Config, report pbwt.Reporter) error {
	switch flags.mode {
	case "within":
		return pbwt.LongMatches(ref, cfg, report)
	case "naive":
		requireQuery(flags)
		return pbwt.NaiveMatch(ref, query, cfg, report)
	case "indexed":
		requireQuery(flags)
		return pbwt.IndexedMatch(ref, query, cfg, report)
	case "sweep":
		requireQuery(flags)
		return pbwt.DynamicSweep(ref, query, cfg, report)
	case "sparse":
		requireQuery(flags)
		sreport := func(a, b, start, end int, isSparse bool) error { return report(a, b, start, end) }
		return pbwt.SparseSweep(ref, query, cfg, sreport)
	case "projected":
		requireQuery(flags)
		if flags.projectionPath == "" {
			log.Panic("pbwt-match: -mode=projected requires -projection")
		}
		sites, err := pbwtio.ReadSitesFile(ctx, flags.projectionPath)
		if err != nil {
			return err
		}
		return pbwt.ProjectedMatch(ref, query, sites, cfg, report)
	default:
		log.Panicf("pbwt-match: unknown -mode %q", flags.mode)
		return nil
	}
}

func requireQuery(flags cmdFlags) {
	if flags.queryPath == "" {
		log.Panicf("pbwt-match: -mode=%s requires -query", flags.mode)
	}
}
