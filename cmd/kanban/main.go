// Command kanban manages the file-backed board in a repository's .kanban/
// directory.
package main

import "github.com/mesh-intelligence/kanban/internal/cli"

func main() {
	cli.Execute()
}
