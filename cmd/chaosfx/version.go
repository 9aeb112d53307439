package main

import "fmt"

// VersionCmd prints the build version.
type VersionCmd struct{}

// Run implements the version command.
func (c *VersionCmd) Run(app *App) error {
	_, err := fmt.Fprintf(app.Out, "chaosfx %s\n", version)
	return err
}
