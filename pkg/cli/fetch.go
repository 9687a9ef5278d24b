package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/faceforge/faceforge/pkg/cli/config"
	"github.com/faceforge/faceforge/pkg/infra/httpfetch"
	"github.com/faceforge/faceforge/pkg/usecase"
)

func cmdFetch() *cli.Command {
	var fetchCfg config.Fetch

	return &cli.Command{
		Name:    "fetch",
		Aliases: []string{"f"},
		Usage:   "Download pretrained mobile face recognition models",
		Flags:   fetchCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			job, err := fetchCfg.Job()
			if err != nil {
				return goerr.Wrap(err, "failed to build fetch job")
			}

			logger.Info("Downloading pretrained models",
				slog.String("dest_dir", job.DestDir),
				slog.Int("models", len(job.Catalog.Models)),
				slog.Any("config", &fetchCfg),
			)

			fetcher := httpfetch.New(
				httpfetch.WithTimeout(fetchCfg.Timeout),
				httpfetch.WithToken(fetchCfg.Token),
			)
			fetchUC := usecase.NewFetch(fetcher)

			report, err := fetchUC.FetchAll(ctx, job)
			if err != nil {
				return goerr.Wrap(err, "failed to run downloader")
			}

			if report.Succeeded() == 0 {
				return goerr.New("no valid models were downloaded",
					goerr.V("attempted", report.Total()),
				)
			}

			logger.Info("Models ready",
				slog.Int("succeeded", report.Succeeded()),
				slog.Int("total", report.Total()),
			)
			return nil
		},
	}
}
