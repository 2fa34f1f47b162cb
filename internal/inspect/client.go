package inspect

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"time"

	"github.com/Snowflake-Labs/sfgrantreport-sub000/internal/perf"
	"github.com/avast/retry-go/v4"
)

// Client runs queries through the external snowsql binary and parses its CSV
// output. This is the only process boundary of the tool; everything past it
// is in-memory.
type Client struct {
	Binary     string // Defaults to snowsql from PATH.
	Connection string // Named connection from the snowsql config.
	Attempts   uint   // Invocation attempts on transient failure.
	Watch      *perf.StopWatch
}

func (c Client) binary() string {
	if c.Binary == "" {
		return "snowsql"
	}
	return c.Binary
}

func (c Client) attempts() uint {
	if c.Attempts == 0 {
		return 3
	}
	return c.Attempts
}

// Query executes one statement and returns the raw CSV output.
func (c Client) Query(ctx context.Context, query string) ([]byte, error) {
	var stdout []byte
	doQuery := func() error {
		var out, stderr bytes.Buffer
		cmd := exec.CommandContext(ctx, c.binary(),
			"-c", c.Connection,
			"-q", query,
			"-o", "output_format=csv",
			"-o", "header=true",
			"-o", "timing=false",
			"-o", "friendly=false",
		)
		cmd.Stdout = &out
		cmd.Stderr = &stderr
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("snowsql: %w: %s", err, stderr.String())
		}
		stdout = out.Bytes()
		return nil
	}
	err := retry.Do(func() error {
		if c.Watch == nil {
			return doQuery()
		}
		var err error
		c.Watch.TimeIt(func() {
			err = doQuery()
		})
		return err
	},
		retry.Context(ctx),
		retry.Attempts(c.attempts()),
		retry.Delay(time.Second),
		retry.OnRetry(func(n uint, err error) {
			slog.Warn("Retrying snowsql invocation.", "attempt", n+1, "err", err)
		}),
	)
	return stdout, err
}

// QueryRows executes one statement and parses the output rows.
func (c Client) QueryRows(ctx context.Context, query string) ([]map[string]string, error) {
	out, err := c.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return ReadRows(bytes.NewReader(out))
}
