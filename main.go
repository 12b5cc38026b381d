/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "solana-lifecycle/cmd"

func main() {
	cmd.Execute()
}
