package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spiretechnology/go-regwatch"
)

var (
	notifiedColor = color.New(color.FgGreen, color.Bold)
	timedOutColor = color.New(color.FgYellow)
)

func printResponse(key string, resp regwatch.Response) {
	c := timedOutColor
	if resp == regwatch.Notified {
		c = notifiedColor
	}
	fmt.Printf("%s %s %s\n", time.Now().Format(time.TimeOnly), c.Sprint(resp), key)
}
