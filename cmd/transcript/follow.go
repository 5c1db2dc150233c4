package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/nxadm/tail"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	transcript "github.com/ieee0824/transcript-text"
	"github.com/ieee0824/transcript-text/internal/logger"
	"github.com/ieee0824/transcript-text/internal/metrics"
)

// FilterEnv is the environment a follow filter expression is evaluated in.
type FilterEnv struct {
	Text     string   // transcript line
	Words    []string // reconstructed words
	Tokens   []string // decoded tokens
	Duration float64  // seconds between first and last word, 0 without timestamps
}

func newFilterEnv(res *transcript.Result) FilterEnv {
	env := FilterEnv{Text: res.Text, Words: res.WordTexts(), Tokens: res.Tokens}
	if n := len(res.Words); n > 0 {
		env.Duration = float64(res.Words[n-1].End - res.Words[0].Start)
	}
	return env
}

// compileFilter compiles a boolean filter expression. An empty source
// yields a nil program, which matches everything.
func compileFilter(src string) (*vm.Program, error) {
	if src == "" {
		return nil, nil
	}
	program, err := expr.Compile(src, expr.Env(FilterEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile filter %q: %w", src, err)
	}
	return program, nil
}

func matchFilter(program *vm.Program, res *transcript.Result) (bool, error) {
	if program == nil {
		return true, nil
	}
	out, err := expr.Run(program, newFilterEnv(res))
	if err != nil {
		return false, err
	}
	ok, _ := out.(bool)
	return ok, nil
}

func newFollowCmd(a *app) *cobra.Command {
	var (
		filter      string
		metricsAddr string
		fromStart   bool
		noFollow    bool
		asJSON      bool
	)
	cmd := &cobra.Command{
		Use:   "follow FILE",
		Short: "Follow a record file and print transcripts as they arrive",
		Long: `follow tails a file of decoder records (token ids, optionally a tab and
timestamps) and prints one transcript line per record. Rotated files are
reopened. A --filter expression over Text, Words, Tokens and Duration
selects which transcripts are printed.`,
		Example: `  transcript follow --symbols tokens.txt --filter 'len(Words) >= 2' decoded.log`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.Get(cmd.Context())
			if filter == "" {
				filter = a.cfg.Follow.Filter
			}
			program, err := compileFilter(filter)
			if err != nil {
				return err
			}
			if metricsAddr == "" {
				metricsAddr = a.cfg.Metrics.Addr
			}
			rec, err := a.reconstructor(cmd, true)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if metricsAddr != "" {
				srv := serveMetrics(metricsAddr, log)
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					_ = srv.Shutdown(shutdownCtx)
				}()
			}

			cfg := tail.Config{
				Follow:    !noFollow,
				ReOpen:    !noFollow,
				MustExist: noFollow,
				Poll:      a.cfg.Follow.Poll,
				Logger:    tail.DiscardingLogger,
			}
			if !fromStart && !noFollow {
				cfg.Location = &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd}
			}
			t, err := tail.TailFile(args[0], cfg)
			if err != nil {
				return fmt.Errorf("tail %s: %w", args[0], err)
			}
			defer t.Cleanup()
			defer t.Stop()

			return followLines(ctx, t.Lines, rec, program, cmd.OutOrStdout(), asJSON, log)
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "", "Boolean expression selecting transcripts to print")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve prometheus metrics on this address")
	cmd.Flags().BoolVar(&fromStart, "from-start", false, "Read the file from the beginning instead of the end")
	cmd.Flags().BoolVar(&noFollow, "no-follow", false, "Stop at end of file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")
	return cmd
}

// followLines reconstructs records from lines until the channel closes or
// ctx is done. Bad records are logged and skipped.
func followLines(ctx context.Context, lines <-chan *tail.Line, rec *transcript.Reconstructor,
	program *vm.Program, w io.Writer, asJSON bool, log *zap.SugaredLogger) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if line.Err != nil {
				log.Warnw("read record", "error", line.Err)
				continue
			}
			ids, ts, err := transcript.ParseRecord(line.Text)
			if err != nil {
				metrics.ObserveParseFailure(metrics.KindRecord)
				log.Warnw("skip record", "line", line.Num, "error", err)
				continue
			}
			res, err := rec.ReconstructIDs(ids, ts)
			if err != nil {
				log.Warnw("skip record", "line", line.Num, "error", err)
				continue
			}
			ok, err = matchFilter(program, res)
			if err != nil {
				log.Warnw("filter failed", "line", line.Num, "error", err)
				continue
			}
			if !ok {
				continue
			}
			if asJSON {
				if err := enc.Encode(res); err != nil {
					return err
				}
				continue
			}
			fmt.Fprintln(w, res.Text)
		}
	}
}

func serveMetrics(addr string, log *zap.SugaredLogger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.Infow("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorw("metrics server", "error", err)
		}
	}()
	return srv
}
