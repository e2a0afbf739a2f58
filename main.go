package main

import "github.com/ValentinKolb/dSav/cmd"

func main() {
	cmd.Execute()
}
