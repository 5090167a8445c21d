// cmd/rackdec-db/main.go
package main

import (
	"rackdec/internal/appshell"
	"rackdec/internal/dbapp"
)

func main() {
	appshell.Main(dbapp.RunContext)
}
