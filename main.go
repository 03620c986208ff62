package main

import "github.com/lukman83/vinted-relist/cmd"

func main() {
	cmd.Execute()
}
