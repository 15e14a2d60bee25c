package main

import "github.com/oshokin/buildmeta/cmd/buildmeta/cmd"

func main() {
	cmd.Execute()
}
