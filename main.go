// main.go
package main

import "movie-booking/cmd"

func main() {
	cmd.Execute()
}
