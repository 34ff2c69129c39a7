package main

import "github.com/chrisdamba/roadatasim/cmd"

func main() {
	cmd.Execute()
}
