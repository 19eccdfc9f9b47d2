package main

import "github.com/LegacyCodeHQ/styleimport/cmd"

func main() {
	cmd.Execute()
}
