package main

import "github.com/SoarinFerret/kensho/cmd/kenshoctl/arg"

func main() {
	arg.Execute()
}
