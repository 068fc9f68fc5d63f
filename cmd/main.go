package main

import (
	_ "github.com/joho/godotenv/autoload"

	cmd "github.com/locnguyenhuu0024/truyen-chibi-app/cmd/chibi"
)

func main() {
	cmd.Execute()
}
