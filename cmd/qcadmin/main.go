// Package main 是运维命令行工具的入口点。
package main

import (
	"os"

	"qcmeta-go/cmd/qcadmin/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
