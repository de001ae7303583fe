package main

import "github.com/kvasirdb/recordio/cmd/recordio/cmd"

func main() {
	cmd.Execute()
}
