package main

import (
	"fmt"

	pagehttp "github.com/fwojciec/pagerag/http"
)

// Run executes the serve command. It blocks until the context is canceled
// and then shuts the server down gracefully.
func (c *ServeCmd) Run(deps *Dependencies) error {
	server := pagehttp.NewServer(deps.Handler, deps.Logger)
	server.Addr = c.Addr

	if err := server.Open(); err != nil {
		return fmt.Errorf("failed to listen on %s: %w", c.Addr, err)
	}
	fmt.Fprintf(deps.Stdout, "Listening on %s\n", server.URL())

	<-deps.Ctx.Done()

	server.Logger.Info("shutting down")
	return server.Close()
}
