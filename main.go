package main

import "github.com/naka-gawa/issue-dashboard/cmd"

func main() {
	cmd.Execute()
}
