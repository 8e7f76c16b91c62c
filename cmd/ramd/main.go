package main

import (
	"context"

	"github.com/storacha/ramd/cmd/cli"
)

func main() {
	cli.ExecuteContext(context.Background())
}
