package main

import "github.com/jsphweid/ustkit/cmd"

func main() {
	cmd.Execute()
}
