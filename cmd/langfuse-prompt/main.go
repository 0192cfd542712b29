// Command langfuse-prompt fetches a prompt from Langfuse and prints it raw,
// compiled with --var name=value pairs, or as a list of its placeholders.
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	ctx := context.Background()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
