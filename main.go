package main

import "newsdesk/cmd/handlers"

func main() {
	handlers.Execute()
}
