package main

import "github.com/fadna/oms/internal/cmd"

func main() {
	cmd.Execute()
}
