package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jongio/weburl/cache"
	"github.com/jongio/weburl/cliout"
	"github.com/jongio/weburl/config"
	"github.com/jongio/weburl/logutil"
	"github.com/jongio/weburl/urlutil"
	"github.com/jongio/weburl/version"
	"github.com/jongio/weburl/weburl"
)

// ModulePath identifies the binary in version output.
const ModulePath = "github.com/jongio/weburl"

var log = logutil.NewLogger("commands")

// options holds the root flags and the state derived from them before a
// subcommand runs.
type options struct {
	output         string
	configPath     string
	location       string
	scheme         string
	debug          bool
	structuredLogs bool
	strict         bool

	cfg *config.Config
	env *weburl.Environment
}

// NewRootCommand builds the weburl command tree.
func NewRootCommand() *cobra.Command {
	o := &options{}

	root := &cobra.Command{
		Use:   "weburl",
		Short: "Inspect and rewrite URLs the way a browser anchor sees them",
		Long: `weburl parses URLs like an HTML anchor element and exposes their parts.

It can rebuild the query string canonically, add or remove the "_" anti-cache
parameter, strip the query or fragment, and prepare URLs for XHR requests.
Relative input is resolved against the current location (--location,
WEBURL_LOCATION or the configuration file).`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: o.load,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if o.cfg == nil || !o.cfg.Metrics {
				return nil
			}
			return writeMetrics(cmd.ErrOrStderr(), nil)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&o.output, "output", "o", "default", "Output format (default, json)")
	flags.StringVar(&o.configPath, "config", "", "Configuration file (default .weburl.yaml, or WEBURL_CONFIG)")
	flags.StringVar(&o.location, "location", "", "Current location used as base and for origin checks")
	flags.StringVar(&o.scheme, "scheme", "", "Scheme prepended to bare hosts such as example.com (http, https)")
	flags.BoolVar(&o.debug, "debug", false, "Enable debug logging")
	flags.BoolVar(&o.structuredLogs, "structured-logs", false, "Write logs as JSON")
	flags.BoolVar(&o.strict, "strict", false, "Fail on input that cannot be parsed instead of keeping it verbatim")

	root.AddCommand(
		newInspectCommand(o),
		newParamsCommand(o),
		newWithCommand(o),
		newAntiCacheCommand(o),
		newStripCommand(o),
		newXHRCommand(o),
		newOpenCommand(o),
		newProbeCommand(o),
		newConfigCommand(o),
		version.NewCommand(version.New(ModulePath, "weburl")),
	)
	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// load reads the configuration, lets explicitly set flags override it and
// applies the result to output, logging, metrics and the URL environment.
func (o *options) load(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output = o.output
	}
	if flags.Changed("location") {
		cfg.Location = o.location
	}
	if flags.Changed("scheme") {
		cfg.DefaultScheme = o.scheme
	}
	if flags.Changed("debug") {
		cfg.Debug = o.debug
	}
	if flags.Changed("structured-logs") {
		cfg.StructuredLogs = o.structuredLogs
	}
	if flags.Changed("strict") {
		cfg.Strict = o.strict
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := cliout.SetFormat(cfg.Output); err != nil {
		return err
	}
	logutil.SetupLogger(cfg.Debug, cfg.StructuredLogs)
	weburl.EnableMetrics(cfg.Metrics)

	o.cfg = cfg
	o.env = newEnvironment(cfg)
	log.Debug("configuration applied", "source", cfg.Source, "location", o.env.Location(), "strict", cfg.Strict)
	return nil
}

func newEnvironment(cfg *config.Config) *weburl.Environment {
	var opts []weburl.Option
	if cfg.Location != "" {
		opts = append(opts, weburl.WithLocation(weburl.StaticLocation(cfg.Location)))
	}
	if cfg.Cache.MaxEntries > 0 {
		opts = append(opts, weburl.WithCache(cache.NewManager[urlutil.Components](cache.Options{
			MaxEntries: cfg.Cache.MaxEntries,
			TTL:        cfg.Cache.TTL,
		})))
	}
	return weburl.NewEnvironment(opts...)
}

// parse turns a command argument into a URL. Bare hosts get the configured
// default scheme; strict mode reports unparseable input as an error.
func (o *options) parse(raw string) (*weburl.URL, error) {
	scheme := o.cfg.DefaultScheme
	if scheme == "" {
		scheme = "https"
	}
	raw = urlutil.NormalizeScheme(raw, scheme)

	if o.cfg.Strict {
		return o.env.ParseStrict(raw)
	}
	return o.env.Parse(raw), nil
}

type hrefResult struct {
	Href string `json:"href"`
}

// printURL writes the href of u, or {"href": ...} in JSON mode.
func printURL(u *weburl.URL) error {
	return cliout.Print(hrefResult{Href: u.Href()}, func() {
		cliout.Plain("%s", u.Href())
	})
}
