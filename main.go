package main

import "github.com/calder-lab/cbt/cmd"

func main() {
	cmd.Execute()
}
