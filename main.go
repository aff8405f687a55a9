package main

import "access-analyzer/cmd"

func main() {
	cmd.Execute()
}
