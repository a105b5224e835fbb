package main

import "github.com/brogergvhs/taoscrape/cmd"

func main() {
	cmd.Execute()
}
