package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/sadok-lajmi/TenukiGo-2025/internal/adapters"
	"github.com/sadok-lajmi/TenukiGo-2025/internal/bootstrap"
	"github.com/sadok-lajmi/TenukiGo-2025/internal/domain/board"
	"github.com/sadok-lajmi/TenukiGo-2025/internal/domain/game"
	"github.com/sadok-lajmi/TenukiGo-2025/internal/render"
	repo "github.com/sadok-lajmi/TenukiGo-2025/internal/repository"
	"github.com/sadok-lajmi/TenukiGo-2025/internal/usecase/archive"
	gameuc "github.com/sadok-lajmi/TenukiGo-2025/internal/usecase/game"
	"github.com/sadok-lajmi/TenukiGo-2025/internal/usecase/record"
)

// newCLIApp creates the CLI application writing its output to out.
func newCLIApp(out io.Writer) *cli.App {
	app := &cli.App{
		Name:    "tenuki",
		Usage:   "Read and replay Go game records",
		Version: Version,
		Writer:  out,
		Commands: []*cli.Command{
			showCmd(),
			movesCmd(),
			exportCmd(),
			pdfCmd(),
			importCmd(),
		},
	}
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

func moveFlag() cli.Flag {
	return &cli.IntFlag{Name: "move", Aliases: []string{"m"}, Value: -1, Usage: "Position after this many moves (default: the end)"}
}

// readRecord reads the record named by the first argument, "-" for stdin.
func readRecord(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", fmt.Errorf("expected one record file, got %d arguments", c.NArg())
	}
	path := c.Args().First()
	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read record: %w", err)
	}
	return string(raw), nil
}

// timelineAt loads the record and moves to --move, the end when unset.
func timelineAt(c *cli.Context) (*gameuc.Timeline, error) {
	text, err := readRecord(c)
	if err != nil {
		return nil, err
	}
	tl := gameuc.NewTimeline()
	tl.Load(record.Decode(text))
	if n := c.Int("move"); n >= 0 {
		tl.Seek(n)
	} else {
		tl.ToEnd()
	}
	return tl, nil
}

func showCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Print the board at a move",
		ArgsUsage: "FILE",
		Flags:     []cli.Flag{moveFlag()},
		Action: func(c *cli.Context) error {
			tl, err := timelineAt(c)
			if err != nil {
				return err
			}
			snap := tl.Snapshot()
			fmt.Fprint(c.App.Writer, render.Text(snap.Board, snap.LastMove))
			fmt.Fprintln(c.App.Writer, render.Caption(snap))
			fmt.Fprintf(c.App.Writer, "Captures: black %d, white %d\n", snap.Captures[board.Black], snap.Captures[board.White])
			return nil
		},
	}
}

func movesCmd() *cli.Command {
	return &cli.Command{
		Name:      "moves",
		Usage:     "List the moves of a record",
		ArgsUsage: "FILE",
		Action: func(c *cli.Context) error {
			text, err := readRecord(c)
			if err != nil {
				return err
			}
			for i, m := range record.Decode(text) {
				if err := writeMove(c.App.Writer, i+1, m); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func writeMove(w io.Writer, n int, m game.Move) error {
	coord, err := record.MoveToGTP(m)
	if err != nil {
		return err
	}
	line := fmt.Sprintf("%3d %s %s", n, m.Player, coord)
	if m.Comment != "" {
		line += "  # " + m.Comment
	}
	_, err = fmt.Fprintln(w, line)
	return err
}

func exportCmd() *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Rewrite a record keeping only its moves",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Output file (default: stdout)"},
			&cli.StringFlag{Name: "black", Usage: "Black player name"},
			&cli.StringFlag{Name: "white", Usage: "White player name"},
			&cli.Float64Flag{Name: "komi", Usage: "Komi"},
		},
		Action: func(c *cli.Context) error {
			text, err := readRecord(c)
			if err != nil {
				return err
			}
			exported := record.Encode(record.Decode(text), record.Header{
				PlayerBlack: c.String("black"),
				PlayerWhite: c.String("white"),
				Komi:        c.Float64("komi"),
			})
			if path := c.String("out"); path != "" {
				return os.WriteFile(path, []byte(exported+"\n"), 0o644)
			}
			_, err = fmt.Fprintln(c.App.Writer, exported)
			return err
		},
	}
}

func pdfCmd() *cli.Command {
	return &cli.Command{
		Name:      "pdf",
		Usage:     "Write a PDF diagram of the board at a move",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			moveFlag(),
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Required: true, Usage: "Output PDF file"},
			&cli.StringFlag{Name: "title", Usage: "Diagram title"},
		},
		Action: func(c *cli.Context) error {
			tl, err := timelineAt(c)
			if err != nil {
				return err
			}
			f, err := os.Create(c.String("out"))
			if err != nil {
				return err
			}
			if err := render.PDF(f, tl.Snapshot(), c.String("title")); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}
}

func importCmd() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Store every record file of a directory in the match archive",
		ArgsUsage: "DIR",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: ".env", Usage: "Configuration file"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("expected one directory, got %d arguments", c.NArg())
			}
			cfg, err := bootstrap.Setup(c.String("config"))
			if err != nil {
				return err
			}
			if cfg.MongoUri == "" {
				return errors.New("MONGO_URI is not set")
			}

			logger, err := zap.NewProduction()
			if err != nil {
				return err
			}
			log := logger.Sugar()
			defer log.Sync()

			mongoAdapter := adapters.NewAdapterMongo(cfg, log)
			if err := mongoAdapter.Init(c.Context); err != nil {
				return err
			}
			defer mongoAdapter.Close(c.Context)

			uc := archive.NewArchiveUseCase(repo.NewMongoMatchArchive(log, mongoAdapter.Database), log, cfg.PageLimitMatches)
			n, err := uc.ImportDir(c.Context, c.Args().First())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(c.App.Writer, "imported %d matches\n", n)
			return err
		},
	}
}
