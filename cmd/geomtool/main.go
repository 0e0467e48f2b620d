// geomtool drives the software geometry pipeline over a demo scene: it
// renders images, picks objects and dumps feedback and evaluator output.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Faultbox/softgl/internal/logger"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one command and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 1
	}

	command := args[0]
	args = args[1:]

	var err error
	switch command {
	case "render":
		err = cmdRender(args, stdout)
	case "pick":
		err = cmdPick(args, stdout)
	case "feedback", "fb":
		err = cmdFeedback(args, stdout)
	case "eval":
		err = cmdEval(args, stdout)
	case "config":
		err = cmdConfig(args, stdout)
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", command)
		printUsage(stderr)
		return 1
	}

	logger.Sync()

	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `geomtool - software geometry pipeline tool

Usage:
  geomtool <command> [options]

Commands:
  render [-o file.png] [-outline] [-light]  Render the demo scene to PNG
  pick [options] <x> <y>                   Select objects around a window point
  feedback [-type 3d] [-limit n]           Dump the feedback stream of the scene
  eval [options] <u> <v>                   Evaluate the patch and its normal
  config [-o file.yaml]                    Write the default configuration

Every command except config accepts:
  -config path  -fit  -debug  -width n  -height n  -shade smooth|flat
  -cull none|front|back|front_and_back  -lighting=false  -grid n

Examples:
  geomtool render -o scene.png -width 800 -height 600
  geomtool pick 320 240
  geomtool feedback -type 2d -limit 10
  geomtool eval 0.5 0.5`)
}
