// Command goatsession creates and serves the current user session.
package main

import "github.com/goatkit/goatsession/internal/cmd"

func main() {
	cmd.Execute()
}
