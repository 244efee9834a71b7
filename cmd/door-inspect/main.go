package main

import "github.com/oshokin/door-guard/cmd/door-inspect/cmd"

func main() {
	cmd.Execute()
}
