package main

import "github.com/goodsru/user-panel/cmd"

func main() {
	cmd.Execute()
}
