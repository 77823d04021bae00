package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/customeros/mailpdf/config"
	"github.com/customeros/mailpdf/internal/logger"
	"github.com/customeros/mailpdf/server"
	"github.com/customeros/mailpdf/services"
	"github.com/customeros/mailpdf/services/pipeline"
)

func main() {
	app := &cli.App{
		Name:  "mailpdf",
		Usage: "convert .eml and .msg emails to PDF",
		Commands: []*cli.Command{
			{
				Name:   "server",
				Usage:  "Start the application server",
				Action: runServer,
			},
			{
				Name:      "convert",
				Usage:     "Convert a single email file to PDF",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "output path, defaults to the input name with .pdf",
					},
					&cli.BoolFlag{
						Name:  "merge",
						Usage: "append attachment renditions, overrides MERGE_ATTACHMENTS",
					},
				},
				Action: runConvert,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.InitConfig()
	if err != nil {
		return nil, errors.Wrap(err, "config initialization failed")
	}
	if cfg == nil {
		return nil, errors.New("config is empty")
	}
	return cfg, nil
}

func runServer(c *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("mailpdf starting up...")

	srv, err := server.NewServer(c.Context, cfg)
	if err != nil {
		return errors.Wrap(err, "server setup failed")
	}

	if err := srv.Run(); err != nil {
		return errors.Wrap(err, "server startup failed")
	}

	log.Println("Shutdown complete")
	return nil
}

func runConvert(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("convert expects exactly one input file", 2)
	}
	input := c.Args().First()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if c.IsSet("merge") {
		cfg.AppConfig.MergeAttachments = c.Bool("merge")
	}

	appLogger := logger.NewAppLogger(cfg.Logger)
	appLogger.InitLogger()

	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}

	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	svcs, err := services.InitServices(ctx, cfg, appLogger, false)
	if err != nil {
		return err
	}
	defer svcs.Close()

	result, err := svcs.Pipeline.Convert(ctx, input, data)
	if err != nil {
		return err
	}

	out := c.String("out")
	if out == "" {
		out = filepath.Join(filepath.Dir(input), pipeline.OutputFilename(input))
	}
	if err := os.WriteFile(out, result.PDF, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", out)
	}

	appLogger.Infof("Wrote %s (%d documents)", out, result.Documents)
	return nil
}
