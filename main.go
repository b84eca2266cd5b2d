package main

import "github.com/hoverkit/hoverkit/cmd"

func main() {
	cmd.Execute()
}
