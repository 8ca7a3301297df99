package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/bowling-league/external/leaguedata"
	"github.com/riskibarqy/bowling-league/internal/domain/league"
	"github.com/riskibarqy/bowling-league/internal/infrastructure/repository/jsonfile"
	"github.com/riskibarqy/bowling-league/internal/platform/logging"
	"github.com/riskibarqy/bowling-league/internal/platform/resilience"
	"github.com/riskibarqy/bowling-league/internal/usecase"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp(os.Stdin, os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "decorate",
		Usage:     "score bowling league documents offline",
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Value: "info", Usage: "debug, info, warn or error", EnvVars: []string{"APP_LOG_LEVEL"}},
		},
		Commands: []*cli.Command{
			newDecorateCommand(),
			newFetchCommand(),
		},
	}
}

func newDecorateCommand() *cli.Command {
	return &cli.Command{
		Name:      "decorate",
		Usage:     "decorate one league document and print it",
		ArgsUsage: "[FILE|-]",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "games-per-series", Value: league.DefaultGamesPerSeries, Usage: "used when the league omits games-per-week"},
			&cli.BoolFlag{Name: "pretty", Usage: "indent the output"},
			&cli.BoolFlag{Name: "strict", Usage: "fail when scoring reports issues"},
		},
		Action: func(c *cli.Context) error {
			logger, err := newLogger(c)
			if err != nil {
				return err
			}

			name := c.Args().First()
			raw, err := readInput(c.App.Reader, name)
			if err != nil {
				return err
			}
			if name == "" || name == "-" {
				name = "stdin"
			}

			doc, err := jsonfile.Decode(raw, name)
			if err != nil {
				return err
			}

			decorateErr := usecase.NewDecorationService(logger, c.Int("games-per-series")).Decorate(c.Context, &doc)
			issues := usecase.Issues(decorateErr)
			for _, issue := range issues {
				logger.WarnContext(c.Context, "scoring issue", "league_id", doc.ID, "issue", issue)
			}
			if c.Bool("strict") && decorateErr != nil {
				return fmt.Errorf("league=%s has %d scoring issue(s): %w", doc.ID, len(issues), decorateErr)
			}

			return writeDocument(c.App.Writer, doc, c.Bool("pretty"))
		},
	}
}

func newFetchCommand() *cli.Command {
	return &cli.Command{
		Name:  "fetch",
		Usage: "download league documents from a remote source into a directory",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "base-url", Required: true, EnvVars: []string{"LEAGUE_DATA_BASE_URL"}},
			&cli.StringSliceFlag{Name: "id", Required: true, Usage: "league id, repeatable"},
			&cli.StringFlag{Name: "out-dir", Value: ".", Usage: "directory for <id>.json files"},
			&cli.IntFlag{Name: "concurrency", Value: 4},
			&cli.IntFlag{Name: "retries", Value: 1},
		},
		Action: func(c *cli.Context) error {
			logger, err := newLogger(c)
			if err != nil {
				return err
			}

			client, err := leaguedata.NewClient(leaguedata.ClientConfig{
				BaseURL:          c.String("base-url"),
				MaxRetries:       c.Int("retries"),
				FetchConcurrency: c.Int("concurrency"),
				Logger:           logger,
				CircuitBreaker:   resilience.DefaultCircuitBreakerConfig(),
			})
			if err != nil {
				return err
			}

			docs, fetchErr := client.FetchLeagues(c.Context, c.StringSlice("id"))
			if err := writeDocuments(c.Context, logger, c.String("out-dir"), docs); err != nil {
				return err
			}
			return fetchErr
		},
	}
}

func newLogger(c *cli.Context) (*logging.Logger, error) {
	level, err := logging.ParseLevel(c.String("log-level"))
	if err != nil {
		return nil, err
	}
	return logging.NewJSONTo(c.App.ErrWriter, level).Named("decorate"), nil
}

func readInput(stdin io.Reader, name string) ([]byte, error) {
	if name == "" || name == "-" {
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return raw, nil
	}

	raw, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return raw, nil
}

func writeDocument(w io.Writer, doc league.League, pretty bool) error {
	var (
		raw []byte
		err error
	)
	if pretty {
		raw, err = sonic.ConfigDefault.MarshalIndent(doc, "", "  ")
	} else {
		raw, err = sonic.Marshal(doc)
	}
	if err != nil {
		return fmt.Errorf("encode league=%s: %w", doc.ID, err)
	}

	raw = append(raw, '\n')
	_, err = w.Write(raw)
	return err
}

func writeDocuments(ctx context.Context, logger *logging.Logger, dir string, docs []league.League) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	for _, doc := range docs {
		raw, err := sonic.ConfigDefault.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("encode league=%s: %w", doc.ID, err)
		}
		path := filepath.Join(dir, doc.ID+".json")
		if err := os.WriteFile(path, append(raw, '\n'), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		logger.InfoContext(ctx, "league document saved", "league_id", doc.ID, "path", path)
	}
	return nil
}
