package main

import "github.com/naka-gawa/github-techstack/cmd"

func main() {
	cmd.Execute()
}
