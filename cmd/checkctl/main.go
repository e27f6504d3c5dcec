package main

import "maintbot/internal/handler/cli"

func main() {
	cli.Run()
}
