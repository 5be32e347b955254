// og-image-generator — Open Graph images for blog posts.
//
// Usage:
//
//	og-image-generator --title <t> --subtitle <s> --author <a> [options] <image>
//	og-image-generator --post <post.md> [options] <image>
//	og-image-generator brands [--brands-config <file>]
//	og-image-generator init [--out brands.yaml]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/binxio/og-image-generator/pkg/blog"
	"github.com/binxio/og-image-generator/pkg/brand"
	"github.com/binxio/og-image-generator/pkg/canvas"
	"github.com/binxio/og-image-generator/pkg/generator"
	"github.com/binxio/og-image-generator/pkg/gravatar"
	"github.com/binxio/og-image-generator/pkg/log"
)

// errUsage marks errors caused by bad command-line input.
var errUsage = errors.New("usage")

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "brands":
		err = runBrands(os.Args[2:], os.Stdout)
	case "init":
		err = runInit(os.Args[2:], os.Stdout)
	case "help", "-h", "--help":
		printUsage(os.Stdout)
	default:
		// Default: generate mode (all flags on root).
		err = run(ctx, os.Args[1:])
	}

	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		stop()
		fatal(err)
	}
}

type options struct {
	post      blog.Blog
	postPath  string
	input     string
	output    string
	overwrite bool
	magnitude float64
	brand     string
	brandsCfg string
	crop      string
	quality   int
	logFile   string
	debug     bool
	timeout   time.Duration
}

func parseFlags(args []string) (*options, error) {
	fs := flag.NewFlagSet("og-image-generator", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	o := &options{}
	fs.StringVar(&o.post.Title, "title", "", "Title of the blog post")
	fs.StringVar(&o.post.Subtitle, "subtitle", "", "Subtitle of the blog post")
	fs.StringVar(&o.post.Author, "author", "", "Author of the blog post")
	fs.StringVar(&o.post.Email, "email", "", "Email address of the author, used for the avatar")
	fs.StringVar(&o.postPath, "post", "", "Markdown post whose frontmatter supplies missing fields")
	fs.Float64Var(&o.magnitude, "g", generator.DefaultGradientMagnitude, "Gradient magnitude 0..1")
	fs.Float64Var(&o.magnitude, "gradient-magnitude", generator.DefaultGradientMagnitude, "Gradient magnitude 0..1")
	fs.StringVar(&o.output, "o", "", "Output file")
	fs.StringVar(&o.output, "output", "", "Output file")
	fs.BoolVar(&o.overwrite, "overwrite", false, "Overwrite an existing output file")
	fs.StringVar(&o.brand, "brand", brand.Default, "Brand: "+strings.Join(brand.Names(), ", "))
	fs.StringVar(&o.brandsCfg, "brands-config", "", "YAML file with brand overrides")
	fs.StringVar(&o.crop, "crop", canvas.CropCenter.String(), "Crop strategy: center or smart")
	fs.IntVar(&o.quality, "quality", generator.DefaultQuality, "JPEG quality 1..100")
	fs.StringVar(&o.logFile, "log-file", "", "Also write logs to this file")
	fs.BoolVar(&o.debug, "debug", false, "Enable debug logging")
	fs.DurationVar(&o.timeout, "avatar-timeout", 0, "Timeout for the avatar request (0 = none)")

	// Accept the image before, between or after the flags.
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				printUsage(os.Stdout)
				return nil, err
			}
			return nil, fmt.Errorf("%w: %v", errUsage, err)
		}
		if fs.NArg() == 0 {
			break
		}
		positional = append(positional, fs.Arg(0))
		args = fs.Args()[1:]
	}

	switch len(positional) {
	case 0:
		return nil, fmt.Errorf("%w: missing argument IMAGE", errUsage)
	case 1:
		o.input = positional[0]
	default:
		return nil, fmt.Errorf("%w: unexpected arguments %q", errUsage, positional[1:])
	}

	if o.quality < 1 || o.quality > 100 {
		return nil, fmt.Errorf("%w: --quality %d out of range 1..100", errUsage, o.quality)
	}
	return o, nil
}

func run(ctx context.Context, args []string) error {
	o, err := parseFlags(args)
	if err != nil {
		return err
	}

	closer := log.Setup(log.Options{File: o.logFile, Debug: o.debug})
	defer closer.Close()

	post := o.post
	if o.postPath != "" {
		fm, err := blog.LoadPost(o.postPath)
		if err != nil {
			return err
		}
		post = post.Merge(fm)
	}
	if err := post.Validate(); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	if err := generator.ValidateInput(o.input); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	mode, err := canvas.ParseCropMode(o.crop)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	b, err := resolveBrand(o.brand, o.brandsCfg)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: o.timeout}
	g := generator.New(gravatar.NewLoader(gravatar.WithHTTPClient(client)))

	res, err := g.Generate(ctx, post, generator.Config{
		Input:             o.input,
		Output:            o.output,
		Overwrite:         o.overwrite,
		GradientMagnitude: o.magnitude,
		Brand:             b,
		Crop:              mode,
		Quality:           o.quality,
	})
	if err != nil {
		return err
	}
	if res.Skipped {
		log.Debugf("left %s untouched", res.Output)
	}
	return nil
}

func resolveBrand(name, configPath string) (*brand.Brand, error) {
	var cfg *brand.Config
	if configPath != "" {
		var err error
		if cfg, err = brand.LoadConfig(configPath); err != nil {
			return nil, err
		}
	}
	return brand.Resolve(name, cfg)
}

func runBrands(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("brands", flag.ContinueOnError)
	var configPath string
	fs.StringVar(&configPath, "brands-config", "", "YAML file with brand overrides")
	if err := fs.Parse(args); err != nil {
		return err
	}

	for i, name := range brand.Names() {
		b, err := resolveBrand(name, configPath)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprint(w, brand.Describe(b))
	}
	return nil
}

func runInit(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	var out string
	var force bool
	fs.StringVar(&out, "out", "brands.yaml", "Output path for the sample brand overrides")
	fs.BoolVar(&force, "overwrite", false, "Replace an existing file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := os.Stat(out); err == nil && !force {
		return fmt.Errorf("%s already exists, use --overwrite to replace it", out)
	}
	if err := os.WriteFile(out, []byte(brand.ExampleConfig()), 0644); err != nil {
		return fmt.Errorf("write brands config: %w", err)
	}

	fmt.Fprintf(w, "Created: %s\n", out)
	fmt.Fprintf(w, "Run: og-image-generator --brands-config %s --title ... <image>\n", out)
	return nil
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	if errors.Is(err, errUsage) {
		fmt.Fprintln(os.Stderr, "Try 'og-image-generator --help' for help.")
	}
	os.Exit(1)
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, `og-image-generator — Open Graph images for blog posts

USAGE:
    og-image-generator [options] <image>
    og-image-generator brands [--brands-config <file>]
    og-image-generator init [--out brands.yaml]

POST:
    --title <text>              Title of the blog post (required)
    --subtitle <text>           Subtitle of the blog post (required)
    --author <name>             Author of the blog post (required)
    --email <address>           Author email, adds a Gravatar picture
    --post <file.md>            Read missing fields from the post's frontmatter

OUTPUT:
    -o, --output <path>         Output file (default: og-<image> next to the image)
    --overwrite                 Replace an existing output file
    --quality <1..100>          JPEG quality (default: %d)

STYLE:
    --brand <name>              %s (default: %s)
    --brands-config <file>      YAML brand overrides (see init)
    -g, --gradient-magnitude <m>  Darkening gradient 0..1 (default: %.1f)
    --crop <center|smart>       Crop strategy for tall images (default: center)

MISC:
    --avatar-timeout <dur>      Avatar request timeout, e.g. 5s (default: none)
    --log-file <path>           Also write logs to a rotated file
    --debug                     Verbose logging

EXAMPLES:
    og-image-generator --title "Hello" --subtitle "World" --author "Jane Doe" cover.jpg
    og-image-generator --post index.md --brand binx.io -o og.png cover.jpg
    og-image-generator brands
    og-image-generator init
`, generator.DefaultQuality, strings.Join(brand.Names(), ", "), brand.Default, generator.DefaultGradientMagnitude)
}
