package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/jongio/weburl/cliout"
	"github.com/jongio/weburl/probe"
	"github.com/jongio/weburl/weburl"
)

func newProbeCommand(o *options) *cobra.Command {
	var (
		opts    probe.Options
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "probe <url>...",
		Short: "Send XHR-style requests to URLs and report the responses",
		Long: `Send a HEAD (or GET) request to each URL after formatting it for XHR:
the fragment is dropped and, unless --no-cache is given, the "_" anti-cache
parameter is set. Redirects are reported, not followed.

Requests to the same origin are rate limited and share a circuit breaker, so
an origin that keeps failing is skipped. The command fails when any probe
does not return a 2xx or 3xx response.`,
		Example: `  weburl probe https://example.com/ https://example.com/api/health --method GET`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			urls := make([]*weburl.URL, 0, len(args))
			for _, arg := range args {
				u, err := o.parse(arg)
				if err != nil {
					return err
				}
				urls = append(urls, u)
			}

			opts.AntiCache = !noCache
			p, err := probe.New(opts)
			if err != nil {
				return err
			}
			report := p.ProbeAll(cmd.Context(), urls)

			if err := cliout.Print(report, func() { printProbeReport(report) }); err != nil {
				return err
			}
			if report.Summary.Failed > 0 {
				return fmt.Errorf("%d of %d probes failed", report.Summary.Failed, report.Summary.Total)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.Method, "method", "HEAD", "HTTP method (GET, HEAD)")
	flags.DurationVar(&opts.Timeout, "timeout", probe.DefaultTimeout, "Timeout per request")
	flags.BoolVar(&noCache, "no-cache", false, "Do not add the anti-cache parameter")
	flags.BoolVar(&opts.HTTPSOnly, "https-only", false, "Reject plain http URLs other than localhost")
	flags.IntVar(&opts.RateLimit, "rate", 0, "Requests per second per origin (0 disables the limit)")
	flags.IntVar(&opts.BreakerFailures, "breaker-failures", probe.DefaultBreakerFailures, "Requests before a failing origin is skipped (-1 disables)")
	flags.IntVar(&opts.MaxConcurrent, "concurrency", probe.DefaultMaxConcurrent, "Maximum parallel requests")
	return cmd
}

func printProbeReport(report probe.Report) {
	rows := make([]cliout.TableRow, 0, len(report.Results))
	for _, r := range report.Results {
		code := "-"
		if r.StatusCode > 0 {
			code = strconv.Itoa(r.StatusCode)
		}
		rows = append(rows, cliout.TableRow{
			"URL":    r.RequestURL,
			"Status": string(r.Status),
			"Code":   code,
			"Time":   r.ResponseTime.Round(time.Millisecond).String(),
		})
	}
	cliout.Table([]string{"URL", "Status", "Code", "Time"}, rows)

	for _, r := range report.Results {
		if r.Error != "" {
			cliout.Warning("%s: %s", r.URL, r.Error)
		}
	}
	cliout.Newline()
	if report.Summary.Failed == 0 {
		cliout.Success("%d of %d probes succeeded", report.Summary.OK, report.Summary.Total)
	}
}
