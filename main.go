package main

import "jsbin/internal/cli"

func main() {
	cli.Execute()
}
