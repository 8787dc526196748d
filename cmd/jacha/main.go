package main

import "github.com/stefanlut/jacha/internal/cli"

func main() {
	cli.Execute()
}
