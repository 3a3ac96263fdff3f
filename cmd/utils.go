package cmd

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
)

const (
	exactArgs = iota
	minArgs
	maxArgs
)

// checkArgs 校验位置参数个数，不符合时打印命令帮助
func checkArgs(ctx *cli.Context, expected, checkType int) error {
	var err error
	cmdName := ctx.Command.Name
	switch checkType {
	case exactArgs:
		if ctx.NArg() != expected {
			err = fmt.Errorf("%s: %q requires exactly %d argument(s)", os.Args[0], cmdName, expected)
		}
	case minArgs:
		if ctx.NArg() < expected {
			err = fmt.Errorf("%s: %q requires a minimum of %d argument(s)", os.Args[0], cmdName, expected)
		}
	case maxArgs:
		if ctx.NArg() > expected {
			err = fmt.Errorf("%s: %q requires a maximum of %d argument(s)", os.Args[0], cmdName, expected)
		}
	}
	if err != nil {
		fmt.Fprint(os.Stderr, "Incorrect Usage.\n\n")
		cli.ShowCommandHelp(ctx, cmdName)
		return err
	}
	return nil
}
