// cmd/rackdec/main.go
package main

import (
	"rackdec/internal/app"
	"rackdec/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
