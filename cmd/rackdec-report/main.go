// cmd/rackdec-report/main.go
package main

import (
	"rackdec/internal/appshell"
	"rackdec/internal/reportapp"
)

func main() {
	appshell.Main(reportapp.RunContext)
}
