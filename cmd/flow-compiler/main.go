package main

import "github.com/oshokin/delivery-flow/cmd/flow-compiler/cmd"

func main() {
	cmd.Execute()
}
