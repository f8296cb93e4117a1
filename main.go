package main

import "github.com/chrisdamba/surplussim/cmd"

func main() {
	cmd.Execute()
}
