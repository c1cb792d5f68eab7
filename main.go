package main

import "github.com/johnbean393/orstats/cmd"

func main() {
	cmd.Execute()
}
