//go:build tinygo

package main

import (
	"watchface/app"
	"watchface/hal"
)

func main() {
	app.Run(hal.New())
}
