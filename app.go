package main

import "github.com/masmgr/revwalk-go/cmd"

func main() {
	cmd.Run()
}
