package main

import "github.com/dh1tw/opusctl/cmd"

func main() {
	cmd.Execute()
}
