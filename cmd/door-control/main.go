package main

import "github.com/oshokin/door-guard/cmd/door-control/cmd"

func main() {
	cmd.Execute()
}
