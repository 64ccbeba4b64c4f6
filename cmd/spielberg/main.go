// Command spielberg is a terminal chat with Spielberg IA, a film and series concierge
// backed by the Gemini API.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/diogo/spielberg/internal/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	commands.Execute(ctx)
}
