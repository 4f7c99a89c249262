package main

import "github.com/petrarca/snippet-lang/internal/cmd"

func main() {
	cmd.Execute()
}
