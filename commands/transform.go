package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jongio/weburl/urlutil"
	"github.com/jongio/weburl/weburl"
)

func newWithCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "with <url> key=value|key...",
		Short: "Replace the query string of a URL",
		Long: `Replace the query string of a URL with the given parameters.

A bare key adds a null parameter; repeating a key builds a list. The
fragment is kept and the new query is written in canonical form.`,
		Example: `  weburl with https://example.com/search?old=1 q=go tag=a tag=b debug`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := o.parse(args[0])
			if err != nil {
				return err
			}
			params, err := paramsFromArgs(args[1:])
			if err != nil {
				return err
			}
			return printURL(u.WithParams(params))
		},
	}
}

func paramsFromArgs(args []string) (*weburl.Params, error) {
	params := weburl.NewParams()
	for _, arg := range args {
		key, value, hasValue := strings.Cut(arg, "=")
		if key == "" {
			return nil, fmt.Errorf("invalid parameter %q: empty key", arg)
		}
		if hasValue {
			params.Add(key, weburl.StringValue(value))
		} else {
			params.Add(key, weburl.NullValue)
		}
	}
	return params, nil
}

func newAntiCacheCommand(o *options) *cobra.Command {
	var remove bool

	cmd := &cobra.Command{
		Use:   "anticache <url>",
		Short: `Add or remove the "_" anti-cache parameter`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := o.parse(args[0])
			if err != nil {
				return err
			}
			if remove {
				return printURL(u.WithoutAntiCache())
			}
			return printURL(u.WithAntiCache())
		},
	}
	cmd.Flags().BoolVar(&remove, "remove", false, "Remove the anti-cache parameter instead of setting it")
	return cmd
}

func newStripCommand(o *options) *cobra.Command {
	var search, hash bool

	cmd := &cobra.Command{
		Use:   "strip <url>",
		Short: "Remove the query string and/or fragment of a URL",
		Long: `Remove the query string (--search) and/or the fragment (--hash) of a URL.
Without flags both are removed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := o.parse(args[0])
			if err != nil {
				return err
			}
			if !search && !hash {
				search, hash = true, true
			}
			if search {
				u = u.WithoutSearch()
			}
			if hash {
				u = u.WithoutHash()
			}
			return printURL(u)
		},
	}
	cmd.Flags().BoolVar(&search, "search", false, "Remove the query string")
	cmd.Flags().BoolVar(&hash, "hash", false, "Remove the fragment")
	return cmd
}

func newXHRCommand(o *options) *cobra.Command {
	var noCache, httpsOnly bool

	cmd := &cobra.Command{
		Use:   "xhr <url>",
		Short: "Format a URL for an XHR request",
		Long: `Format a URL for an XHR request: the fragment is dropped and, unless
--no-cache is given, the "_" anti-cache parameter is set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := o.parse(args[0])
			if err != nil {
				return err
			}
			target := u.FormatForXHR(!noCache)
			if httpsOnly {
				if err := urlutil.ValidateHTTPSOnly(target.Href()); err != nil {
					return fmt.Errorf("%s: %w", target.Href(), err)
				}
			}
			return printURL(target)
		},
	}
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Do not add the anti-cache parameter")
	cmd.Flags().BoolVar(&httpsOnly, "https-only", false, "Reject plain http URLs other than localhost")
	return cmd
}
