package main

import "github.com/goplus/vsbuild/cmd/vsbuild/internal"

func main() {
	internal.Execute()
}
