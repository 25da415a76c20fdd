package main

import "doctranslate/cmd"

func main() {
	cmd.Execute()
}
