package main

import "github.com/gaurav-prasanna/onestandard/cmd"

func main() {
	cmd.Execute()
}
