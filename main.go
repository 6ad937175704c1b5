package main

import "thoughts-backend/cmd"

func main() {
	cmd.Run()
}
