// Command server serves the adoption site forms with server-side validation.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/adoptmenow/formvalidation/pkg/logger"
)

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("server stopped", logger.Error(err))
		os.Exit(1)
	}
}
