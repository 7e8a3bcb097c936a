package main

import "github.com/ImranQ74/todo-phase2/internal/app"

func main() {
	app.InitDefaultLogger()
	app.MustReadEnv()
	app.MustInitApplicationLogger()

	app.MustInitTaskStore()
	defer app.CloseTaskStore()

	app.MustListenAndServeHTTP()
}
