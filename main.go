package main

import "github.com/gaurav-prasanna/docmind/cmd"

func main() {
	cmd.Execute()
}
