package main

import (
	"fmt"
	"os"

	"minutes-tracker/cmd/cli/auth"
	"minutes-tracker/cmd/cli/root"
	"minutes-tracker/cmd/cli/user"
	"minutes-tracker/cmd/cli/work"
)

func main() {
	rootCmd := root.GetRoot()
	auth.InitAuth(rootCmd)
	work.InitWork(rootCmd)
	user.InitUser(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
