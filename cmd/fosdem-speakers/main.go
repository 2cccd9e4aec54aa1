package main

import "github.com/EdwardBetts/fosdem-speakers/internal/cli"

func main() {
	cli.Execute()
}
