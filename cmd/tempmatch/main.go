package main

import "tempmatch/internal/cli"

func main() {
	cli.Execute()
}
