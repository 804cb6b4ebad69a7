package main

import "github.com/Faisal-Ahmad-dotlabs/webseed-website/cmd"

func main() {
	cmd.Execute()
}
