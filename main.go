package main

import (
	"log/slog"
	"os"

	"github.com/supakorn-kn/peponi-admin/cli"
)

func main() {

	if err := cli.RootCmd().Execute(); err != nil {
		slog.Error("peponi-admin failed", "error", err)
		os.Exit(1)
	}
}
