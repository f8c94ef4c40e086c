package main

import (
	"os"

	"fleamarket-client/cmd/marketctl/commands"
	"fleamarket-client/lib/serviceutil"
	"fleamarket-client/lib/telemetry"
)

func main() {
	ctx := serviceutil.SignalContext()
	telemetry.InitSlog(os.Getenv("MARKETCTL_DEBUG") != "")
	// no telemetry.json5 in the tree, spans go nowhere
	_, err := telemetry.SetupFromEnv(ctx, "marketctl")
	if err == nil {
		telemetry.InstrumentPerfStats(ctx)
	}
	commands.ExecuteContext(ctx)
}
