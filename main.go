package main

import "github.com/5alad/loveemu-lab/cmd"

func main() {
	cmd.Execute()
}
