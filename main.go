package main

import (
	"time"
	_ "time/tzdata"

	"aptchat/app"
)

func main() {
	time.Local = time.UTC

	app.Run()
}
