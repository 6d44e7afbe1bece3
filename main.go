/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/ryanj77/ResturauntBackend/cmd"

func main() {
	cmd.Execute()
}
