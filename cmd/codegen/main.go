package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/delaneyj/watchparty/cmd/codegen/templates"
	"github.com/urfave/cli/v3"
)

const genericParamCountKey = "count"

func main() {
	cmd := &cli.Command{
		Name:  "generate",
		Usage: "Generate the typed watcher arity wrappers",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  genericParamCountKey,
				Usage: "Number of generic parameters to generate",
				Value: 8,
			},
		},
		Action: generate,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func generate(ctx context.Context, cmd *cli.Command) error {
	start := time.Now()
	log.Printf("Codegen for typed watchers started!")
	defer func() {
		log.Printf("Codegen for typed watchers finished in %v", time.Since(start))
	}()

	count := int(cmd.Uint(genericParamCountKey))
	contents := templates.TypedWatchersGen(count)
	return os.WriteFile("typed/watchers.go", []byte(contents), 0644)
}
