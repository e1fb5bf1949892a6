// cmd/ixrna/main.go
package main

import (
	"ixrna/internal/app"
	"ixrna/internal/appshell"
)

func main() { appshell.Main(app.RunContext) }
