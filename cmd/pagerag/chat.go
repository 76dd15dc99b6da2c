package main

import "github.com/fwojciec/pagerag/tui"

// Run executes the chat command.
func (c *ChatCmd) Run(deps *Dependencies) error {
	return tui.Run(deps.Ctx, deps.Handler, c.Request(""))
}
