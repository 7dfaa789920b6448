package main

import "kurva/cmd"

func main() {
	cmd.Execute()
}
