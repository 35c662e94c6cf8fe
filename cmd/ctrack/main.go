package main

import "github.com/adi1913/competitor-tracker/internal/cli"

func main() {
	cli.Execute()
}
