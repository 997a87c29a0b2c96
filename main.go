package main

import "github.com/LacunaOmnibus/Chat-Envolve/cmd"

func main() {
	cmd.Execute()
}
