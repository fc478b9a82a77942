package main

import "github.com/vaultbak/vaultbak/cmd"

func main() {
	cmd.Execute()
}
