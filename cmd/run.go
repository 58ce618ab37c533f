// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"

	"github.com/alecthomas/kong"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	sniff "github.com/hashicorp/go-sniff"
	"github.com/hashicorp/go-sniff/s3blob"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// stdinName is the input name that selects STDIN.
const stdinName = "-"

// s3Scheme prefixes inputs that name S3 objects, e.g. s3://bucket/key
const s3Scheme = "s3://"

// CLI are the cli parameters for the gosniff binary
type CLI struct {
	Inputs          []string         `arg:"" name:"input" help:"Files or S3 objects (s3://bucket/key) to sniff. (\"-\" for STDIN)"`
	JSON            bool             `short:"j" help:"Print one JSON object per input."`
	MaxSniffSize    int64            `optional:"" default:"65536" help:"Size of the sniffing window (in bytes)."`
	NoFallback      bool             `help:"Disable the generic content sniffer that runs after all other detectors."`
	Parallel        int              `short:"p" optional:"" default:"4" help:"Number of files sniffed in parallel."`
	S3Endpoint      string           `optional:"" help:"Endpoint of an S3 compatible object store."`
	S3PathStyle     bool             `optional:"" help:"Use path style addressing for S3."`
	S3Region        string           `optional:"" help:"AWS region of the S3 bucket."`
	Tee             bool             `short:"t" help:"Copy STDIN to STDOUT while sniffing it. Results are printed to STDERR."`
	Telemetry       bool             `short:"T" optional:"" default:"false" help:"Print telemetry data to log after each detection."`
	Verbose         bool             `short:"v" optional:"" help:"Verbose logging."`
	Version         kong.VersionFlag `short:"V" optional:"" help:"Print release version information."`
	ContinueOnError bool             `short:"C" help:"Keep sniffing remaining inputs after an error."`
}

// result is the outcome of sniffing one input.
type result struct {
	Input     string `json:"input"`
	Extension string `json:"extension,omitempty"`
	MediaType string `json:"media_type,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Run the entrypoint into go-sniff as a cli tool
func Run(version, commit, date string) {
	var cli CLI
	kong.Parse(&cli,
		kong.Description("Identify file formats by their content"),
		kong.UsageOnError(),
		kong.Vars{
			"version": fmt.Sprintf("%s (%s), commit %s, built at %s", filepath.Base(os.Args[0]), version, commit, date),
		},
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, cli, os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}

// run sniffs all inputs and prints the results in input order.
func run(ctx context.Context, cli CLI, stdin io.Reader, stdout, stderr io.Writer) error {

	// Check for verbose output
	logLevel := slog.LevelError
	if cli.Verbose {
		logLevel = slog.LevelDebug
	}

	// setup logger
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	// setup telemetry hook
	telemetryToLog := func(ctx context.Context, td *sniff.TelemetryData) {
		if cli.Telemetry {
			logger.Info("detection finished", "telemetry", td)
		}
	}

	sniffer := sniff.New(
		sniff.WithFallbackDetection(!cli.NoFallback),
		sniff.WithLogger(logger),
		sniff.WithMaxSniffSize(cli.MaxSniffSize),
		sniff.WithTelemetryHook(telemetryToLog),
	)

	results := make([]result, len(cli.Inputs))
	out := stdout
	if cli.Tee {
		out = stderr
	}

	// STDIN can only be consumed once and is handled up front
	stdinUsed := false
	for i, input := range cli.Inputs {
		if input != stdinName {
			continue
		}
		if stdinUsed {
			return errors.New("stdin can only be sniffed once")
		}
		stdinUsed = true
		results[i] = sniffStdin(ctx, sniffer, stdin, stdout, cli.Tee)
	}
	if cli.Tee && !stdinUsed {
		return errors.New("--tee requires \"-\" as input")
	}

	g, gctx := errgroup.WithContext(ctx)
	parallel := cli.Parallel
	if parallel < 1 {
		parallel = 1
	}
	g.SetLimit(parallel)

	// S3 client is only created if an s3:// input is given
	s3Client := sync.OnceValues(func() (*s3.Client, error) {
		return s3blob.NewClient(ctx, s3blob.ClientOptions{
			Region:       cli.S3Region,
			Endpoint:     cli.S3Endpoint,
			UsePathStyle: cli.S3PathStyle,
		})
	})

	var mu sync.Mutex
	for i, input := range cli.Inputs {
		if input == stdinName {
			continue
		}
		g.Go(func() error {
			// skip remaining inputs after an error
			if gctx.Err() != nil {
				return nil
			}
			f, err := sniffInput(gctx, sniffer, input, s3Client)
			r := newResult(input, f, errors.Wrapf(err, "cannot sniff %s", input))
			mu.Lock()
			results[i] = r
			mu.Unlock()
			if r.Error != "" && !cli.ContinueOnError {
				return errors.New(r.Error)
			}
			return nil
		})
	}
	waitErr := g.Wait()

	for _, r := range results {
		if r.Input == "" {
			// skipped after an earlier error
			continue
		}
		if err := printResult(out, r, cli.JSON); err != nil {
			return errors.Wrap(err, "cannot print result")
		}
	}

	if waitErr != nil {
		return waitErr
	}
	if failed := countFailed(results); failed > 0 {
		return fmt.Errorf("%d of %d inputs failed", failed, len(results))
	}
	return nil
}

// sniffStdin detects the format of stdin. With tee, stdin is copied to stdout
// while being sniffed.
func sniffStdin(ctx context.Context, sniffer *sniff.Sniffer, stdin io.Reader, stdout io.Writer, tee bool) result {
	if !tee {
		f, err := sniffer.DetectReader(ctx, stdin)
		return newResult(stdinName, f, errors.Wrap(err, "cannot sniff stdin"))
	}

	ds, err := sniffer.WrapReader(ctx, stdin)
	if err != nil {
		return newResult(stdinName, nil, errors.Wrap(err, "cannot sniff stdin"))
	}
	defer ds.Close()
	if _, err := io.Copy(stdout, ds); err != nil {
		return newResult(stdinName, ds.Format(), errors.Wrap(err, "cannot copy stdin"))
	}
	return newResult(stdinName, ds.Format(), nil)
}

// sniffInput detects the format of a file or, for s3:// inputs, of an S3 object.
func sniffInput(ctx context.Context, sniffer *sniff.Sniffer, input string, s3Client func() (*s3.Client, error)) (*sniff.Format, error) {
	if !strings.HasPrefix(input, s3Scheme) {
		return sniffer.DetectFile(ctx, input)
	}

	bucket, key, ok := strings.Cut(strings.TrimPrefix(input, s3Scheme), "/")
	if !ok || bucket == "" || key == "" {
		return nil, errors.Errorf("invalid s3 location %q", input)
	}
	client, err := s3Client()
	if err != nil {
		return nil, err
	}
	obj, err := s3blob.Open(ctx, client, bucket, key)
	if err != nil {
		return nil, err
	}
	return sniffer.DetectBlob(ctx, obj)
}

func newResult(input string, f *sniff.Format, err error) result {
	r := result{Input: input}
	if err != nil {
		r.Error = err.Error()
		return r
	}
	if f != nil {
		r.Extension = f.Extension
		r.MediaType = f.MediaType
	}
	return r
}

func printResult(w io.Writer, r result, asJSON bool) error {
	if asJSON {
		return json.NewEncoder(w).Encode(r)
	}
	var err error
	switch {
	case r.Error != "":
		_, err = fmt.Fprintf(w, "%s: error: %s\n", r.Input, r.Error)
	case r.Extension == "":
		_, err = fmt.Fprintf(w, "%s: unknown\n", r.Input)
	default:
		_, err = fmt.Fprintf(w, "%s: %s %s\n", r.Input, r.Extension, r.MediaType)
	}
	return err
}

func countFailed(results []result) int {
	n := 0
	for _, r := range results {
		if r.Error != "" {
			n++
		}
	}
	return n
}
