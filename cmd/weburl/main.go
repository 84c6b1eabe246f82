// Command weburl inspects and rewrites URLs.
package main

import (
	"os"

	"github.com/jongio/weburl/commands"
)

func main() {
	os.Exit(commands.Execute())
}
