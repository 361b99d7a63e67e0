package main

import "estateinsights/cmd"

func main() {
	cmd.Execute()
}
