package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-longui/longui/pkg/geometry"
)

func init() {
	RegisterCommand(&Command{
		Name:  "layout",
		Short: "Lay out a description and print the tree",
		Long: `Build the widget tree described by a YAML file, lay it out in the
window size from longui.yaml (default 800x600) and print every widget with
its position, size and flags.

Flags:
  --size WxH     Override the window size
  --zoom Z       Override the root zoom factor`,
		Usage: "longui layout <file.yaml> [--size WxH] [--zoom Z]",
		Run:   runLayout,
	})
}

// layoutOptions holds the flags of the layout command.
type layoutOptions struct {
	file string
	size geometry.Size
	zoom float32
}

func parseLayoutArgs(args []string) (layoutOptions, error) {
	var opts layoutOptions
	for i := 0; i < len(args); i++ {
		arg := args[i]
		value := ""
		switch {
		case arg == "--size" || arg == "--zoom":
			if i+1 >= len(args) {
				return opts, fmt.Errorf("%s requires a value", arg)
			}
			value = args[i+1]
			i++
		case strings.HasPrefix(arg, "--size="), strings.HasPrefix(arg, "--zoom="):
			arg, value, _ = strings.Cut(arg, "=")
		case strings.HasPrefix(arg, "-"):
			return opts, fmt.Errorf("unknown flag: %s", arg)
		default:
			if opts.file != "" {
				return opts, fmt.Errorf("only one description can be laid out at a time")
			}
			opts.file = arg
			continue
		}

		var err error
		switch arg {
		case "--size":
			opts.size, err = parseSize(value)
		case "--zoom":
			opts.zoom, err = parsePositive(value)
		}
		if err != nil {
			return opts, fmt.Errorf("%s: %w", arg, err)
		}
	}
	if opts.file == "" {
		return opts, fmt.Errorf("description file is required\n\nUsage: longui layout <file.yaml>")
	}
	return opts, nil
}

// parseSize parses "WxH".
func parseSize(s string) (geometry.Size, error) {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return geometry.Size{}, fmt.Errorf("size must look like 800x600 (got %q)", s)
	}
	width, err := parsePositive(w)
	if err != nil {
		return geometry.Size{}, err
	}
	height, err := parsePositive(h)
	if err != nil {
		return geometry.Size{}, err
	}
	return geometry.Size{Width: width, Height: height}, nil
}

func parsePositive(s string) (float32, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	if v <= 0 {
		return 0, fmt.Errorf("value must be positive (got %g)", v)
	}
	return float32(v), nil
}

func runLayout(args []string) error {
	opts, err := parseLayoutArgs(args)
	if err != nil {
		return err
	}

	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	if opts.size == (geometry.Size{}) {
		opts.size = geometry.Size{Width: s.cfg.Width, Height: s.cfg.Height}
	}
	if opts.zoom == 0 {
		opts.zoom = s.cfg.Zoom
	}

	root, err := s.build(opts.file)
	if err != nil {
		return err
	}
	defer s.release(root)
	s.layout(root, opts.size, opts.zoom)

	p := newTreePrinter(stdout)
	p.Header("%s: %s at %gx%g", s.cfg.AppName, filepath.Base(opts.file), opts.size.Width, opts.size.Height)
	p.Print(root)
	return nil
}
