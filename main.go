package main

import "benchreport/cmd"

func main() {
	cmd.Execute()
}
