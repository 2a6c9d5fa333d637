package main

import "github.com/raskyld/gitlab-components-docs/internal/cli"

func main() {
	cli.Execute()
}
