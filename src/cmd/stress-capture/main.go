package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"floatshot/src/config"
	"floatshot/src/singleinstance"
)

type stressOptions struct {
	n        int
	port     int
	deadline time.Duration
}

type result struct {
	ok, busy, absent, failed int32
	elapsed                  time.Duration
}

func (r result) String() string {
	return fmt.Sprintf("ok=%d busy=%d absent=%d err=%d elapsed=%s", r.ok, r.busy, r.absent, r.failed, r.elapsed)
}

func main() {
	if err := newRootCmd(&stressOptions{}, os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(opts *stressOptions, out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "stress-capture",
		Short:         "Flood a resident floatshot with capture requests",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.n <= 0 {
				return fmt.Errorf("--n must be positive, got %d", opts.n)
			}
			r := runWithOptions(context.Background(), *opts)
			fmt.Fprintf(out, "launched=%d %s\n", opts.n, r)
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.n, "n", 50, "number of concurrent clients")
	cmd.Flags().IntVar(&opts.port, "port", config.DefaultPort, "resident loopback port")
	cmd.Flags().DurationVar(&opts.deadline, "deadline", 5*time.Second, "per-client timeout")

	return cmd
}

func runWithOptions(ctx context.Context, opts stressOptions) result {
	var wg sync.WaitGroup
	var r result

	start := time.Now()
	for i := 0; i < opts.n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(ctx, opts.deadline)
			defer cancel()
			delegated, err := singleinstance.NewClient(opts.port).RequestCapture(ctx)
			switch {
			case errors.Is(err, singleinstance.ErrBusy):
				atomic.AddInt32(&r.busy, 1)
			case err != nil:
				atomic.AddInt32(&r.failed, 1)
			case delegated:
				atomic.AddInt32(&r.ok, 1)
			default:
				atomic.AddInt32(&r.absent, 1)
			}
		}()
	}
	wg.Wait()
	r.elapsed = time.Since(start)
	return r
}
