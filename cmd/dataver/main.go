package main

import "github.com/perfpredict/dataver/cmd/dataver/cmd"

func main() {
	cmd.Execute()
}
