package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aelune/asciienc"
	"github.com/aelune/asciienc/internal/config"
	"github.com/aelune/asciienc/logx"
)

type cliFlags struct {
	input      string
	output     string
	configPath string
	fontSize   int
	spacing    int
	height     int
	palette    string
	interp     string
	sampler    string
	maxPixels  int
	timeout    time.Duration
	logLevel   string
	verbose    bool

	// names of the flags given on the command line
	set map[string]bool
}

func parseFlags(args []string, stderr io.Writer) (*cliFlags, error) {
	def := config.Default()
	c := &cliFlags{set: map[string]bool{}}

	fs := flag.NewFlagSet("asciienc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&c.input, "input", "",
		"Image to convert: file path, http(s) URL, data: URL or - for stdin (required)")
	fs.StringVar(&c.output, "output", "",
		"Path to save the output, .png renders glyphs (if not specified, prints to stdout)")
	fs.StringVar(&c.configPath, "config", "",
		"Path to a TOML config file; flags given explicitly override it")
	fs.IntVar(&c.fontSize, "fontsize", def.Encoder.FontSize,
		"Block size in canvas pixels")
	fs.IntVar(&c.spacing, "spacing", def.Encoder.CharSpacing,
		"Glyph spacing for PNG output")
	fs.IntVar(&c.height, "height", def.Encoder.OutputHeight,
		"Canvas height in pixels")
	fs.StringVar(&c.palette, "palette", def.Palette,
		"Palette name or path to a palette JSON file "+
			"(Embedded: "+strings.Join(asciienc.PaletteNames(), ", ")+")")
	fs.StringVar(&c.interp, "interp", def.Interpolation,
		"Scaling interpolation: area, linear, approx or nearest")
	fs.StringVar(&c.sampler, "sampler", def.Sampler,
		"Decoding backend: "+strings.Join(samplerNames(), ", "))
	fs.IntVar(&c.maxPixels, "maxpixels", def.MaxPixels,
		"Reject images with more pixels than this, 0 for no limit")
	fs.DurationVar(&c.timeout, "timeout", 0,
		"Give up loading the image after this long, 0 for no limit")
	fs.StringVar(&c.logLevel, "loglevel", def.LogLevel,
		"Log level: debug, info, warn or error")
	fs.BoolVar(&c.verbose, "v", false,
		"Verbose logging, same as -loglevel debug")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) {
		c.set[f.Name] = true
	})

	switch {
	case c.input != "" && fs.NArg() > 0:
		fmt.Fprintf(stderr, "Both -input %q and argument %q given, use one\n",
			c.input, fs.Arg(0))
		return nil, errors.New("input given twice")
	case fs.NArg() > 1:
		fmt.Fprintf(stderr, "Only one image can be converted, got %d arguments\n", fs.NArg())
		return nil, errors.New("too many arguments")
	case c.input == "" && fs.NArg() == 0:
		fmt.Fprintln(stderr, "Please provide the image using the -input flag")
		fs.PrintDefaults()
		return nil, errors.New("no input")
	case c.input == "":
		c.input = fs.Arg(0)
	}
	return c, nil
}

// settings loads the config file, if any, and applies explicitly set
// flags on top of it.
func (c *cliFlags) settings() (config.File, error) {
	f := config.Default()
	if c.configPath != "" {
		var err error
		if f, err = config.Load(c.configPath); err != nil {
			return config.File{}, err
		}
	}

	if c.set["fontsize"] {
		f.Encoder.FontSize = c.fontSize
	}
	if c.set["spacing"] {
		f.Encoder.CharSpacing = c.spacing
	}
	if c.set["height"] {
		f.Encoder.OutputHeight = c.height
	}
	if c.set["palette"] {
		f.Palette = c.palette
	}
	if c.set["interp"] {
		f.Interpolation = c.interp
	}
	if c.set["sampler"] {
		f.Sampler = c.sampler
	}
	if c.set["maxpixels"] {
		f.MaxPixels = c.maxPixels
	}
	if c.set["loglevel"] {
		f.LogLevel = c.logLevel
	}
	if c.verbose {
		f.LogLevel = logx.DEBUG.String()
	}
	return f, nil
}

func run(ctx context.Context, settings config.File, input, output string,
	stdout io.Writer, log *logx.ConsoleLogger) error {

	opts, err := settings.Options()
	if err != nil {
		return err
	}
	sampler, err := newSampler(settings)
	if err != nil {
		return err
	}
	opts = append(opts,
		asciienc.WithSampler(sampler),
		asciienc.WithLogger(log.Section("encoder")))
	enc, err := asciienc.NewEncoder(opts...)
	if err != nil {
		return err
	}

	cfg := enc.Config()
	log.LogPrintfX("main", logx.DEBUG,
		"palette %s, font size %d, spacing %d, height %d, sampler %s, interpolation %s",
		enc.Palette().Name(), cfg.FontSize, cfg.CharSpacing, cfg.OutputHeight,
		settings.Sampler, settings.Interpolation)

	src := asciienc.ParseSource(input)
	start := time.Now()
	art, err := enc.Encode(ctx, src)
	if err != nil {
		return err
	}
	rows := strings.Count(art, "\n")
	log.LogPrintfX("main", logx.INFO, "converted %s to %d rows in %v",
		src, rows, time.Since(start))

	switch {
	case output == "":
		_, err = io.WriteString(stdout, art)
		return err

	case strings.EqualFold(filepath.Ext(output), ".png"):
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		if err := asciienc.RenderPNG(f, art, asciienc.RenderOptionsFromConfig(cfg)); err != nil {
			f.Close()
			return fmt.Errorf("failed to render PNG: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to write PNG: %w", err)
		}
		log.LogPrintfX("main", logx.INFO, "PNG output written to %s", output)

	default:
		if err := os.WriteFile(output, []byte(art), 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		log.LogPrintfX("main", logx.INFO, "output written to %s", output)
	}
	return nil
}

func main() {
	c, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(1)
	}

	settings, err := c.settings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "asciienc: %v\n", err)
		os.Exit(1)
	}
	level, err := settings.Level()
	if err != nil {
		fmt.Fprintf(os.Stderr, "asciienc: %v\n", err)
		os.Exit(1)
	}
	log := logx.NewConsoleLogger(os.Stderr, level)

	ctx, cancel := context.Background(), context.CancelFunc(func() {})
	if c.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
	}
	err = run(ctx, settings, c.input, c.output, os.Stdout, log)
	cancel()
	if err != nil {
		log.LogPrintfX("main", logx.ERROR, "%v", err)
		os.Exit(1)
	}
}
