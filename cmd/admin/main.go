// cmd/admin/main.go
//
// Admin console entry point.  Same wiring as cmd/web with the admin
// profile and conf/admin.yaml.
package main

import (
	"log"

	"github.com/yanizio/todogate/internal/app"
	"github.com/yanizio/todogate/internal/site"
)

func main() {
	if err := app.Run(site.Admin); err != nil {
		log.Fatalf("admin site: %v", err)
	}
}
