package main

import "github.com/mergington/activities/cmd/mergingtond/cmd"

func main() {
	cmd.Execute()
}
