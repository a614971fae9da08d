package main

import (
	"embed"

	"github.com/shiurnotes/shiurnotes/cmd"
)

//go:embed views
var embedViews embed.FS

func main() {
	cmd.Execute(embedViews)
}
