package main

import "github.com/go-glaze/glaze/cmd/glaze/cmd"

func main() {
	cmd.Execute()
}
