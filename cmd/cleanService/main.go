package main

import (
	"github.com/equiscribe/scribego/internal/app/clean"
	"github.com/labstack/gommon/color"
)

func main() {
	printBanner()
	clean.Execute()
}

var (
	version string
)

func printBanner() {
	banner := `
       __
  ____/ /__  ____ _____
 / ___/ / _ \/ __ ` + "`" + `/ __ \
/ /__/ /  __/ /_/ / / / /
\___/_/\___/\__,_/_/ /_/  v: %s

%s
________________________________________________________

`
	cl := color.New()
	cl.Printf(banner, cl.Red(version), cl.Green("github.com/equiscribe/scribego"))
}
