package main

import (
	"os"

	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
