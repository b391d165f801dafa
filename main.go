package main

import "github.com/gaurav-prasanna/html2md/cmd"

func main() {
	cmd.Execute()
}
