package main

import (
	"fmt"
	"os"

	"github.com/appclacks/slo-server/cmd"
)

func main() {
	if err := cmd.Run(); err != nil {
		fmt.Println(err.Error())
		os.Exit(2)
	}
}
