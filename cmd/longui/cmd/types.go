package cmd

import "fmt"

func init() {
	RegisterCommand(&Command{
		Name:  "types",
		Short: "List the widget types descriptions can use",
		Long:  `List the widget type names accepted in the "type" field of a description.`,
		Usage: "longui types",
		Run:   runTypes,
	})
}

func runTypes(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	for _, name := range s.registry.Names() {
		fmt.Fprintln(stdout, name)
	}
	return nil
}
