package main

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func main() {
	// CheckErr prints formatted error message, if there is any, and exits
	cobra.CheckErr(newRootCmd(afero.NewOsFs()).Execute())
}
