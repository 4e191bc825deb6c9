package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/phonebook/internal/server"
	"github.com/dmitrijs2005/phonebook/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
