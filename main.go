package main

import "github.com/ValentinKolb/encbench/cmd"

func main() {
	cmd.Execute()
}
