package main

import "github.com/chirper-app/chirper/cmd"

func main() {
	cmd.Execute()
}
