package main

import "vmexport/cmd"

func main() {
	cmd.Execute()
}
