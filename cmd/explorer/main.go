// Command explorer serves the interactive dashboard: a year-range
// filtered view of the metadata CSV with live charts.
package main

import (
	"embed"
	"io/fs"
	"log/slog"
	"os"

	"cordscope/internal/app"
)

//go:embed web
var webFiles embed.FS

func main() {
	frontendFS, err := fs.Sub(webFiles, "web")
	if err != nil {
		slog.Error("failed to open embedded frontend", slog.String("error", err.Error()))
		os.Exit(1)
	}

	application, err := app.New(frontendFS)
	if err != nil {
		slog.Error("failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
