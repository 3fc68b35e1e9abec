package main

import (
	"github.com/equiscribe/scribego/internal/app/scribe"
	"github.com/labstack/gommon/color"
)

func main() {
	printBanner()
	scribe.Execute()
}

var (
	version string
)

func printBanner() {
	banner := `
  ___  ____ ___  __(_)
 / _ \/ __ ` + "`" + `/ / / / /
/  __/ /_/ / /_/ / /
\___/\__, /\__,_/_/
    /____/     _ __
   ______________(_) /_  ___
  / ___/ ___/ ___/ / __ \/ _ \
 (__  ) /__/ /  / / /_/ /  __/
/____/\___/_/  /_/_.___/\___/  v: %s

%s
________________________________________________________

`
	cl := color.New()
	cl.Printf(banner, cl.Red(version), cl.Green("github.com/equiscribe/scribego"))
}
