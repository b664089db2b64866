package main

import (
	"github.com/bloghq/blogapi/internal/cli"
)

func main() {
	cli.Execute()
}
