package commands

import (
	"github.com/spf13/cobra"

	"github.com/jongio/weburl/cliout"
	"github.com/jongio/weburl/weburl"
)

func newParamsCommand(o *options) *cobra.Command {
	var stringify bool

	cmd := &cobra.Command{
		Use:   "params <url>",
		Short: "Parse the query string of a URL",
		Long: `Parse the query string of a URL.

Repeated keys become lists and keys given without "=" are null. With
--stringify the parameters are printed in canonical form instead: keys
sorted, list values sorted and everything percent-encoded.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := o.parse(args[0])
			if err != nil {
				return err
			}
			params := u.Params()

			if stringify {
				query := weburl.Stringify(params)
				return cliout.Print(map[string]string{"query": query}, func() {
					cliout.Plain("%s", query)
				})
			}
			return cliout.Print(params, func() {
				printParamsTable(params)
			})
		},
	}
	cmd.Flags().BoolVar(&stringify, "stringify", false, "Print the canonical query string")
	return cmd
}
