package main

import "os"

func main() {
	c := newCLI()
	err := newRootCmd(c).Execute()
	c.sync()
	if err != nil {
		os.Exit(1)
	}
}
