// cmd/web/main.go
//
// Consumer to-do site entry point.
//
// Everything past flag-free start-up lives in internal/app so the admin
// binary shares it.  Configuration comes from conf/global.yaml,
// conf/consumer.yaml and TODOGATE_* variables; see internal/config.
package main

import (
	"log"

	"github.com/yanizio/todogate/internal/app"
	"github.com/yanizio/todogate/internal/site"
)

func main() {
	if err := app.Run(site.Consumer); err != nil {
		log.Fatalf("consumer site: %v", err)
	}
}
