package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/hesusruiz/minimarkup/markup"
	"github.com/hesusruiz/vcutils/yaml"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// exampleInput is parsed when no input file is given
const exampleInput = `<a href="localhost"><i>test</i><img src="test" onerror="alert(1)"/></a>`

// options collects the settings of one run, from the config file and the flags
type options struct {
	indent          string
	allowMismatched bool
	normalize       bool
	color           bool
	formatter       string
	style           string
	diagram         string
}

// loadConfig reads the YAML configuration file, or returns an empty
// configuration if fileName is empty
func loadConfig(fileName string) (*yaml.YAML, error) {
	if len(fileName) == 0 {
		return yaml.ParseYaml("")
	}
	cfg, err := yaml.ParseYamlFile(fileName)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", fileName, err)
	}
	return cfg, nil
}

// optionsFrom merges the configuration file with the command line flags.
// Flags win when they are set.
func optionsFrom(c *cli.Context, cfg *yaml.YAML) (options, error) {
	opts := options{
		indent:          cfg.String("markup.indent", markup.DefaultIndent),
		allowMismatched: cfg.Bool("markup.allowMismatchedClose"),
		formatter:       cfg.String("highlight.formatter", "terminal256"),
		style:           cfg.String("highlight.style", "monokai"),
		normalize:       c.Bool("normalize"),
		color:           c.Bool("color"),
		diagram:         c.String("diagram"),
	}
	if c.IsSet("indent") {
		n := c.Int("indent")
		if n < 0 {
			return opts, fmt.Errorf("indent must not be negative, got %d", n)
		}
		opts.indent = strings.Repeat(" ", n)
	}
	if c.Bool("allow-mismatched") {
		opts.allowMismatched = true
	}
	if c.IsSet("style") {
		opts.style = c.String("style")
	}
	return opts, nil
}

// render parses src and returns the text to write: the printed tree, or the
// normalized source when requested
func render(fileName string, src []byte, opts options, sugar *zap.SugaredLogger) (string, error) {
	if opts.normalize {
		return markup.Normalize(fileName, string(src))
	}

	root, err := markup.ParseFromBytes(fileName, src,
		markup.WithLogger(sugar),
		markup.AllowMismatchedClose(opts.allowMismatched),
	)
	if err != nil {
		return "", err
	}

	if len(opts.diagram) > 0 {
		svg, err := markup.RenderSVG(context.Background(), root)
		if err != nil {
			return "", err
		}
		if err := os.WriteFile(opts.diagram, svg, 0664); err != nil {
			return "", err
		}
		sugar.Debugw("diagram written", "file", opts.diagram, "bytes", len(svg))
	}

	pr := &markup.Printer{Indent: opts.indent}
	return pr.Sprint(root), nil
}

// readInput returns the contents of the input named on the command line:
// stdin for "-", the example document when there is none
func readInput(c *cli.Context) (fileName string, src []byte, err error) {
	if !c.Args().Present() {
		fmt.Fprintln(os.Stderr, "no input file provided, using the built-in example")
		return "example", []byte(exampleInput), nil
	}

	fileName = c.Args().First()
	if fileName == "-" {
		src, err = io.ReadAll(os.Stdin)
		return "stdin", src, err
	}

	src, err = os.ReadFile(fileName)
	return fileName, src, err
}

// writeOutput writes the result to the output file, or stdout if there is none
func writeOutput(outputFileName string, result string, opts options) error {
	var w io.Writer = os.Stdout
	if len(outputFileName) > 0 {
		f, err := os.Create(outputFileName)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	if opts.color {
		return markup.Highlight(w, result, opts.formatter, opts.style)
	}
	_, err := io.WriteString(w, result)
	return err
}

// processWatch checks periodically if an input file (inputFileName) has been modified, and if so
// it processes the file and writes the result to the output file (outputFileName)
func processWatch(inputFileName string, outputFileName string, opts options, sugar *zap.SugaredLogger) error {

	var oldTimestamp time.Time

	for {

		info, err := os.Stat(inputFileName)
		if err != nil {
			return err
		}
		currentTimestamp := info.ModTime()

		if oldTimestamp.Before(currentTimestamp) {
			oldTimestamp = currentTimestamp
			fmt.Fprintln(os.Stderr, "************Processing*************")

			src, err := os.ReadFile(inputFileName)
			if err != nil {
				return err
			}

			// A syntax error is reported and we keep watching for the fix
			result, err := render(inputFileName, src, opts, sugar)
			if err != nil {
				sugar.Errorw("parsing failed", "file", inputFileName, "error", err)
			} else if err := writeOutput(outputFileName, result, opts); err != nil {
				return err
			}
		}

		time.Sleep(1 * time.Second)

	}
}

// process is the main entry point of the program
func process(c *cli.Context) error {

	var z *zap.Logger
	var err error

	// Setup the logging system
	if c.Bool("debug") {
		z, err = zap.NewDevelopment()
	} else {
		z, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}

	sugar := z.Sugar()
	defer sugar.Sync()

	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return err
	}
	opts, err := optionsFrom(c, cfg)
	if err != nil {
		return err
	}

	outputFileName := c.String("output")

	if c.Bool("watch") {
		if !c.Args().Present() || c.Args().First() == "-" {
			return fmt.Errorf("watch mode needs an input file")
		}
		return processWatch(c.Args().First(), outputFileName, opts, sugar)
	}

	fileName, src, err := readInput(c)
	if err != nil {
		return err
	}

	result, err := render(fileName, src, opts, sugar)
	if err != nil {
		sugar.Debugw("parsing failed", "file", fileName, "error", err)
		return err
	}

	return writeOutput(outputFileName, result, opts)
}

// newApp builds the command line application
func newApp() *cli.App {
	return &cli.App{
		Name:      "minimarkup",
		Version:   "v0.1.0",
		Compiled:  time.Now(),
		Usage:     "parse tag/text markup into a tree and print it indented",
		UsageText: "minimarkup [options] [INPUT_FILE | -] (without input the built-in example is used)",
		Action:    process,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write the result to `FILE` (default is stdout)",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "read settings from the YAML `FILE`",
			},
			&cli.BoolFlag{
				Name:    "normalize",
				Aliases: []string{"n"},
				Usage:   "print the source with canonical tags instead of the tree",
			},
			&cli.BoolFlag{
				Name:  "allow-mismatched",
				Usage: "let a closing tag close the innermost element whatever its name",
			},
			&cli.IntFlag{
				Name:  "indent",
				Usage: "indent each level with `N` spaces",
				Value: 2,
			},
			&cli.BoolFlag{
				Name:  "color",
				Usage: "highlight the output",
			},
			&cli.StringFlag{
				Name:  "style",
				Usage: "highlight with the chroma `STYLE`",
			},
			&cli.StringFlag{
				Name:  "diagram",
				Usage: "also render the tree as an SVG diagram to `FILE`",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "run in debug mode",
			},
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "watch the input file for changes",
			},
		},
	}
}

func main() {

	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

}
