package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/jongio/weburl/cliout"
	"github.com/jongio/weburl/weburl"
)

type inspectReport struct {
	Href        string         `json:"href"`
	Protocol    string         `json:"protocol"`
	Username    string         `json:"username,omitempty"`
	Host        string         `json:"host"`
	Hostname    string         `json:"hostname"`
	Port        string         `json:"port"`
	Pathname    string         `json:"pathname"`
	Search      string         `json:"search"`
	Hash        string         `json:"hash"`
	Origin      string         `json:"origin"`
	Relative    string         `json:"relative"`
	CrossOrigin bool           `json:"crossOrigin"`
	Params      *weburl.Params `json:"params"`
}

func newInspectCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <url>",
		Short: "Show the components, origin and query parameters of a URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := o.parse(args[0])
			if err != nil {
				return err
			}

			c := u.Components()
			report := inspectReport{
				Href:        u.Href(),
				Protocol:    u.Protocol(),
				Username:    c.Username,
				Host:        u.Host(),
				Hostname:    u.Hostname(),
				Port:        u.Port(),
				Pathname:    u.Pathname(),
				Search:      u.Search(),
				Hash:        u.Hash(),
				Origin:      u.Origin(),
				Relative:    u.Relative(),
				CrossOrigin: u.IsCrossOrigin(),
				Params:      u.Params(),
			}

			return cliout.Print(report, func() {
				cliout.Header("URL")
				cliout.Label("Href", cliout.URL(report.Href))
				cliout.Label("Protocol", report.Protocol)
				if report.Username != "" {
					cliout.Label("Username", report.Username)
				}
				cliout.Label("Host", report.Host)
				cliout.Label("Hostname", report.Hostname)
				cliout.Label("Port", orNone(report.Port))
				cliout.Label("Pathname", report.Pathname)
				cliout.Label("Search", orNone(report.Search))
				cliout.Label("Hash", orNone(report.Hash))
				cliout.Label("Origin", report.Origin)
				cliout.Label("Relative", report.Relative)
				if report.CrossOrigin {
					cliout.LabelColored("Cross-origin", "yes", cliout.BrightYellow)
				} else {
					cliout.Label("Cross-origin", "no")
				}
				printParamsTable(report.Params)
			})
		},
	}
}

func orNone(s string) string {
	if s == "" {
		return cliout.Muted("(none)")
	}
	return s
}

func printParamsTable(p *weburl.Params) {
	cliout.Section("Params")
	if p.Len() == 0 {
		cliout.Plain("   %s", cliout.Muted("(none)"))
		return
	}

	var rows []cliout.TableRow
	p.Range(func(key string, values []weburl.Value) bool {
		shown := make([]string, len(values))
		for i, v := range values {
			shown[i] = v.Str
			if v.Null {
				shown[i] = "(null)"
			}
		}
		rows = append(rows, cliout.TableRow{"Key": key, "Value": strings.Join(shown, ", ")})
		return true
	})
	cliout.Table([]string{"Key", "Value"}, rows)
}
