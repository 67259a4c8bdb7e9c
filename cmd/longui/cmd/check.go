package cmd

import (
	"fmt"

	"github.com/go-longui/longui/pkg/core"
	"github.com/go-longui/longui/pkg/errors"
	"github.com/go-longui/longui/pkg/geometry"
)

func init() {
	RegisterCommand(&Command{
		Name:  "check",
		Short: "Build descriptions and verify the trees",
		Long: `Build each description, lay it out once and verify the sibling links
of every container.

A description fails when it cannot be built, when a container's links are
inconsistent or when an error diagnostic is reported while laying it out.`,
		Usage: "longui check <file.yaml>...",
		Run:   runCheck,
	})
}

// integrityChecker is implemented by list containers.
type integrityChecker interface {
	CheckIntegrity() error
}

func runCheck(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("at least one description file is required\n\nUsage: longui check <file.yaml>...")
	}

	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	failed := 0
	for _, file := range args {
		if err := s.check(file); err != nil {
			failed++
			fmt.Fprintf(stdout, "FAIL %s: %v\n", file, err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d descriptions failed", failed, len(args))
	}
	return nil
}

// check builds and lays out one description and verifies it.
func (s *session) check(file string) error {
	s.diags.reset()
	root, err := s.build(file)
	if err != nil {
		return err
	}
	defer s.release(root)
	s.layout(root, geometry.Size{Width: s.cfg.Width, Height: s.cfg.Height}, s.cfg.Zoom)

	widgets := 0
	var linkErr error
	walk(root, func(w core.Widget) {
		widgets++
		if c, ok := w.(integrityChecker); ok && linkErr == nil {
			linkErr = c.CheckIntegrity()
		}
	})
	if linkErr != nil {
		return linkErr
	}
	if n := s.diags.count(errors.LevelError); n > 0 {
		return fmt.Errorf("%d error diagnostics", n)
	}
	fmt.Fprintf(stdout, "ok   %s (%d widgets, %d warnings)\n", file, widgets, s.diags.count(errors.LevelWarning))
	return nil
}
