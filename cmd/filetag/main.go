package main

import (
	"context"
	"log"
	"os"

	"filetag-api/internal"
)

func main() {
	ctx := context.Background()

	app, err := internal.NewApp(ctx)
	if err != nil {
		log.Fatalf("init app failed: %v", err)
	}
	defer app.Close()

	if err = app.InitStores(ctx); err != nil {
		app.Logger().Sugar().Fatalf("store warm-up failed: %v", err)
	}
	app.InitControllers()

	if err = app.Run(ctx); err != nil {
		app.Logger().Sugar().Errorf("filetag stopped with error: %v", err)
		os.Exit(1)
	}
}
