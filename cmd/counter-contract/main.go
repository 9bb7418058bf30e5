// Command counter-contract handles exactly one contract request per process:
// one JSON line in on stdin, at most one event line out on stderr, one
// response line out on stdout, and an exit status of 0 (ok) or 1 (rejected).
package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/mattjoyce/counter-contract/internal/contract"
	"github.com/mattjoyce/counter-contract/internal/events"
	"github.com/mattjoyce/counter-contract/internal/log"
	"github.com/mattjoyce/counter-contract/internal/manifest"
	"github.com/mattjoyce/counter-contract/internal/protocol"
)

// diagnostics receives structured logs. stdout and stderr carry protocol
// lines only, so nothing is written by default.
var diagnostics io.Writer = io.Discard

func main() {
	os.Exit(run(os.Stdin, os.Stdout, os.Stderr))
}

func run(stdin io.Reader, stdout, stderr io.Writer) int {
	m, err := manifest.Default()
	if err != nil {
		return contract.ExitFatal
	}

	log.Setup(diagnostics, m.LogLevel)
	logger := log.WithComponent(m.Name).With(
		slog.String("invocation_id", uuid.NewString()),
		slog.String("version", m.Version),
	)

	d, err := contract.New(m, events.NewStreamEmitter(stderr), logger)
	if err != nil {
		logger.Error("failed to build dispatcher", "error", err)
		return contract.ExitFatal
	}

	out, err := d.Run(stdin)
	if err != nil {
		logger.Error("failed to emit event", "error", err)
		return contract.ExitFatal
	}

	if err := protocol.EncodeResponse(stdout, &out.Response); err != nil {
		logger.Error("failed to write response", "error", err)
		return contract.ExitFatal
	}

	if out.Err != nil {
		logger.Warn("invocation failed", "error", out.Err, "exit_code", out.ExitCode())
	}
	return out.ExitCode()
}
