package main

import "fmt"

// Run executes the ask command. Validation and pipeline failures are
// printed as the answer, the same way the chat front ends show them.
func (c *AskCmd) Run(deps *Dependencies) error {
	answer := deps.Handler.Handle(deps.Ctx, c.Request(c.Question))
	fmt.Fprintln(deps.Stdout, answer)
	return nil
}
