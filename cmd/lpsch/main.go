package main

import "github.com/jeffwheeler/LibrePCB/cmd/lpsch/cmd"

func main() {
	cmd.Execute()
}
