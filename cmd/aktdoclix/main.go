package main

import "github.com/user/aktdoclix/internal/cli"

func main() {
	cli.Execute()
}
