package main

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/MrJamesThe3rd/invoi/internal/config"
	"github.com/MrJamesThe3rd/invoi/internal/export"
	"github.com/MrJamesThe3rd/invoi/internal/invoice"
	"github.com/MrJamesThe3rd/invoi/internal/invoice/store"
	"github.com/MrJamesThe3rd/invoi/internal/preview"
	"github.com/MrJamesThe3rd/invoi/internal/storage"
	"github.com/MrJamesThe3rd/invoi/internal/urlstate"
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "invoi-render",
		Usage: "render the current invoice to a print-ready PDF or HTML file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "url",
				Aliases: []string{"u"},
				Usage:   "share link whose fields override the stored invoice",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "output directory (defaults to EXPORT_DIR)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "pdf or html",
				Value:   string(export.FormatPDF),
			},
			&cli.BoolFlag{
				Name:  "no-stored",
				Usage: "start from a blank invoice instead of the stored one",
			},
		},
		Action: render,
	}
}

func render(c *cli.Context) error {
	format, err := export.ParseFormat(c.String("format"))
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	inv := invoice.Default(time.Now())

	if !c.Bool("no-stored") {
		backend, err := storage.Open(c.Context, cfg)
		if err != nil {
			slog.Warn("storage unavailable, rendering from defaults", "driver", cfg.Storage.Driver, "error", err)
			backend = storage.Memory()
		}
		defer backend.Close()

		if saved, ok := store.New(backend).Load(c.Context); ok {
			inv = saved
		}
	}

	if raw := c.String("url"); raw != "" {
		u, err := url.Parse(raw)
		if err != nil {
			return cli.Exit(fmt.Sprintf("invalid --url: %v", err), 2)
		}

		inv = urlstate.Decode(u.Query(), inv)
	}

	out := c.String("out")
	if out == "" {
		out = cfg.Export.Dir
	}

	svc := export.NewService(preview.A4)

	res, err := svc.Export(c.Context, inv, format, out)
	if err != nil {
		return fmt.Errorf("exporting: %w", err)
	}

	fmt.Fprintln(c.App.Writer, svc.Summary(res))

	return nil
}

func main() {
	_ = godotenv.Load()

	if err := newApp().Run(os.Args); err != nil {
		slog.Error("render failed", "error", err)
		os.Exit(1)
	}
}
