package main

import "nexttalk-backend/internal/app"

func main() {
	app.Run()
}
