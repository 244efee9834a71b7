package main

import "github.com/oshokin/door-guard/cmd/door-hmi/cmd"

func main() {
	cmd.Execute()
}
