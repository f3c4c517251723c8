package main

import (
	"io"
	"os"

	logrusr "github.com/bombsimon/logrusr/v3"
	"github.com/go-logr/logr"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	logLevel       int
	enableJaeger   bool
	jaegerEndpoint string
}

func rootCmd() *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:           "termbar",
		Short:         "Draw terminal progress bars for long running work",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().IntVar(&g.logLevel, "verbose", 0, "level for logging output")
	cmd.PersistentFlags().BoolVar(&g.enableJaeger, "enable-jaeger", false, "enable tracer exports to jaeger endpoint")
	cmd.PersistentFlags().StringVar(&g.jaegerEndpoint, "jaeger-endpoint", "http://localhost:14268/api/traces", "jaeger endpoint to collect tracing data")

	cmd.AddCommand(runCmd(g), capsCmd(g))
	return cmd
}

// logger builds the logr.Logger of a command on top of logrus.
func (g *globalFlags) logger(w io.Writer) logr.Logger {
	logrusLog := logrus.New()
	logrusLog.SetOutput(w)
	logrusLog.SetFormatter(&logrus.TextFormatter{})
	// Adding 5 here to move logs to info level
	// setting verbose 1 -> V(2) logs show up
	// setting verbose 2 -> V(3) logs show up
	logrusLog.SetLevel(logrus.Level(g.logLevel + 5))
	return logrusr.New(logrusLog)
}

func main() {
	cmd := rootCmd()
	if err := cmd.Execute(); err != nil {
		cmd.PrintErrln("Error:", err)
		os.Exit(1)
	}
}
