// Command idmctl is an interactive shell over the identity service's HTTP API.
package main

import (
	"context"
	"flag"

	"github.com/filmstack/idm/internal/client/api"
	"github.com/filmstack/idm/internal/client/cli"
)

func main() {
	serverURL := flag.String("s", "http://localhost:8080", "identity service base URL")
	flag.Parse()

	app := cli.NewApp(api.NewClient(*serverURL))
	app.Run(context.Background())
}
