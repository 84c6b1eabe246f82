package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jongio/weburl/browser"
	"github.com/jongio/weburl/cliout"
)

type openResult struct {
	Href   string `json:"href"`
	Target string `json:"target"`
}

func newOpenCommand(o *options) *cobra.Command {
	var antiCache bool
	var target string

	cmd := &cobra.Command{
		Use:   "open <url>",
		Short: "Open a URL in the web browser",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !browser.IsValid(target) {
				return fmt.Errorf("invalid target %q (valid: %s)", target, browser.FormatValidTargets())
			}
			u, err := o.parse(args[0])
			if err != nil {
				return err
			}
			if antiCache {
				u = u.WithAntiCache()
			}

			if err := browser.Launch(cmd.Context(), browser.LaunchOptions{
				URL:    u.Href(),
				Target: browser.Target(target),
			}); err != nil {
				return err
			}

			display := browser.GetTargetDisplayName(browser.Target(target))
			return cliout.Print(openResult{Href: u.Href(), Target: display}, func() {
				if browser.ResolveTarget(browser.Target(target)) == browser.TargetNone {
					cliout.Info("Browser launch disabled: %s", cliout.URL(u.Href()))
					return
				}
				cliout.Success("Opened %s in %s", cliout.URL(u.Href()), display)
			})
		},
	}
	cmd.Flags().BoolVar(&antiCache, "anti-cache", false, `Set the "_" anti-cache parameter before opening`)
	cmd.Flags().StringVar(&target, "target", string(browser.TargetDefault), "Browser target ("+browser.FormatValidTargets()+")")
	return cmd
}
