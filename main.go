/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/openshelf/openshelf/cmd"

func main() {
	cmd.Execute()
}
