// main.go
package main

import "review-api/cmd"

func main() {
	cmd.Execute()
}
