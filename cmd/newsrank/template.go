package main

import (
	"fmt"

	"github.com/fwojciec/newsrank/excelize"
)

// Run executes the template command.
func (c *TemplateCmd) Run(deps *Dependencies) error {
	if err := excelize.WriteTemplate(c.Path); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	fmt.Fprintf(deps.Stdout, "Wrote source template to %s\n", c.Path)
	return nil
}
