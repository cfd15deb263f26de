package main

import "github.com/forgec/forgec/cmd"

func main() {
	cmd.Execute()
}
