package config

import (
	"time"

	"github.com/urfave/cli/v3"

	"github.com/faceforge/faceforge/pkg/domain/model"
)

// Fetch holds model downloader configuration
type Fetch struct {
	DestDir     string
	CatalogPath string
	MinSize     int64
	Timeout     time.Duration
	Token       string `masq:"secret"`
	Verify      bool
}

// Flags returns CLI flags for downloader configuration
func (c *Fetch) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "dest-dir",
			Usage:       "Directory downloads are placed in",
			Value:       "assets/models",
			Destination: &c.DestDir,
			Sources:     cli.EnvVars("FACEFORGE_DEST_DIR"),
		},
		&cli.StringFlag{
			Name:        "catalog",
			Usage:       "TOML catalog file replacing the built-in model list",
			Destination: &c.CatalogPath,
			Sources:     cli.EnvVars("FACEFORGE_CATALOG"),
		},
		&cli.Int64Flag{
			Name:        "min-size",
			Usage:       "Size in bytes a download must exceed to be accepted",
			Value:       model.MinModelSize,
			Destination: &c.MinSize,
		},
		&cli.DurationFlag{
			Name:        "timeout",
			Usage:       "Per-download timeout",
			Value:       5 * time.Minute,
			Destination: &c.Timeout,
		},
		&cli.StringFlag{
			Name:        "token",
			Usage:       "Bearer token sent with download requests",
			Destination: &c.Token,
			Sources:     cli.EnvVars("FACEFORGE_TOKEN"),
		},
		&cli.BoolFlag{
			Name:        "verify",
			Usage:       "Check the TFLite file identifier of each download",
			Value:       false,
			Destination: &c.Verify,
		},
	}
}

// Job builds the fetch job described by the flags. The catalog file, when
// given, replaces the built-in list.
func (c *Fetch) Job() (*model.FetchJob, error) {
	job := &model.FetchJob{
		DestDir: c.DestDir,
		MinSize: c.MinSize,
		Verify:  c.Verify,
	}

	if c.CatalogPath != "" {
		catalog, err := model.LoadCatalog(c.CatalogPath)
		if err != nil {
			return nil, err
		}
		job.Catalog = catalog
	}

	job.ApplyDefaults()
	return job, nil
}
