package main

import "github.com/getcreddy/wordforge/cmd"

func main() {
	cmd.Execute()
}
