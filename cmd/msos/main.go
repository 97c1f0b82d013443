package main

import "github.com/tinmanjk/msos/cmd/msos/cmd"

func main() {
	cmd.Execute()
}
