package main

import "github.com/khrees2412/talentflow/cmd"

func main() {
	cmd.Execute()
}
