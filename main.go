package main

import "github.com/audiolibrelab/samplelog/cmd"

func main() {
	cmd.Execute()
}
