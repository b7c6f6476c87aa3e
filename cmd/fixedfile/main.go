// Command fixedfile generates synthetic fixed-width files and converts
// fixed-width files to delimited text.
package main

import (
	"os"

	"github.com/ianlopshire/fixedfile/cmd/fixedfile/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
