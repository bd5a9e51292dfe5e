package main

import "listkeeper/internal/app"

func main() {
	app.Run()
}
