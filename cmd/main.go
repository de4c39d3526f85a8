package main

import "github.com/adanyl0v/go-taskboard/internal/app"

func main() {
	app.InitDefaultLogger()
	app.MustReadEnv()
	app.MustInitApplicationLogger()

	app.MustOpenStore()
	defer app.CloseStore()

	app.MustListenAndServeHTTP()
}
