// Command tinybrowser resolves a stylesheet against an HTML document,
// lays the result out as block boxes and paints it to a PNG.
package main

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/disintegration/imaging"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"tinybrowser/config"
	"tinybrowser/css"
	"tinybrowser/html"
	"tinybrowser/layout"
	"tinybrowser/render"
	"tinybrowser/style"
)

func main() {
	cmd := &cli.Command{
		Name:      "tinybrowser",
		Usage:     "resolve styles against an HTML document and lay out block boxes",
		ArgsUsage: "<input.html>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "css", Usage: "stylesheet `FILE` to apply"},
			&cli.StringFlag{Name: "out", Value: "out.png", Usage: "output PNG `FILE` (empty to skip painting)"},
			&cli.IntFlag{Name: "width", Value: 800, Usage: "viewport width in px"},
			&cli.IntFlag{Name: "height", Value: 600, Usage: "viewport height in px"},
			&cli.BoolFlag{Name: "dump", Usage: "print the layout tree to stdout"},
			&cli.StringFlag{Name: "log-level", Value: "normal", Usage: "none, normal or debug"},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(_ context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		return fmt.Errorf("expected exactly one input file, got %d", cmd.NArg())
	}

	log, err := config.NewLogger(cmd.String("log-level"))
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	var errs error
	htmlData, err := os.ReadFile(cmd.Args().First())
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("unable to read document: %w", err))
	}
	var cssData []byte
	if name := cmd.String("css"); name != "" {
		if cssData, err = os.ReadFile(name); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("unable to read stylesheet: %w", err))
		}
	}
	if errs != nil {
		return errs
	}

	root, err := html.Parse(bytes.NewReader(htmlData))
	if err != nil {
		return fmt.Errorf("unable to parse document: %w", err)
	}

	sheet := css.NewParser(log).Parse(cssData)
	for _, w := range sheet.Warnings {
		log.Warn("Stylesheet construct skipped", zap.String("reason", w))
	}
	log.Debug("Stylesheet parsed", zap.Int("rules", len(sheet.Rules)))

	styled := style.Tree(root, sheet)

	width, height := int(cmd.Int("width")), int(cmd.Int("height"))
	viewport := layout.Dimensions{
		Content: layout.Rect{Width: float64(width), Height: float64(height)},
	}
	layoutRoot, err := layout.Tree(styled, viewport)
	if err != nil {
		return fmt.Errorf("layout failed: %w", err)
	}

	if cmd.Bool("dump") {
		fmt.Print(layoutRoot.Dump())
	}

	if out := cmd.String("out"); out != "" {
		canvas := render.Paint(layoutRoot, layout.Rect{Width: float64(width), Height: float64(height)})
		if err := imaging.Save(canvas.Image(), out); err != nil {
			return fmt.Errorf("unable to write %s: %w", out, err)
		}
		log.Info("Painted document", zap.String("out", out), zap.Int("width", width), zap.Int("height", height))
	}
	return nil
}
