package main

import "fileshare/cmd"

func main() {
	cmd.Execute()
}
