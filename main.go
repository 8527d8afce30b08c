package main

import "github.com/lowkeylabs/chatsweep/cmd"

func main() {
	cmd.Execute()
}
