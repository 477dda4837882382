package main

import "github.com/theirongolddev/scold/cmd"

func main() {
	cmd.Execute()
}
