// Command fxinfo prints the unit catalogue, measured frequency responses of
// units, linear-prediction analyses of audio frames, and spectral
// properties of the analysis windows.
//
// Usage:
//
//	fxinfo [flags]
//
// Without a mode flag it lists every unit.
//
// Examples:
//
//	fxinfo -list
//	fxinfo -unit butterworth-lp -set freqHz=1000 -set order=4
//	fxinfo -unit rbj-peaking -set gainDB=6 -rate 44100 -fft 16384
//	fxinfo -unit distortion -set shape=3 -thd 1000
//	fxinfo -lpc vowel.wav -at 0.5 -order 12
//	fxinfo -windows -size 2048
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var errUsage = errors.New("usage error")

type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ",") }

func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}

type options struct {
	list    bool
	unit    string
	sets    []string
	rate    float64
	fft     int
	thd     float64
	lpc     string
	at      float64
	frameMs float64
	order   int
	windows bool
	size    int
	verbose bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		logrus.Fatal(err)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	log := logrus.New()
	log.SetOutput(stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if opts.verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	switch {
	case opts.windows:
		return printWindows(stdout, opts.size)
	case opts.lpc != "":
		return printLPC(stdout, log, opts)
	case opts.unit != "":
		return printUnit(stdout, log, opts)
	default:
		return printList(stdout)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	var sets multiFlag

	fs := flag.NewFlagSet("fxinfo", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.BoolVar(&opts.list, "list", false, "list every unit (default mode)")
	fs.StringVar(&opts.unit, "unit", "", "print the controls and measured response of a unit")
	fs.Var(&sets, "set", "control assignment name=value for -unit (repeatable)")
	fs.Float64Var(&opts.rate, "rate", 48000, "sample rate for -unit in Hz")
	fs.IntVar(&opts.fft, "fft", 8192, "FFT size of the measured response")
	fs.Float64Var(&opts.thd, "thd", 0, "with -unit, also measure harmonic distortion of a sine at this frequency in Hz")
	fs.StringVar(&opts.lpc, "lpc", "", "audio file to analyse with linear prediction")
	fs.Float64Var(&opts.at, "at", 0, "start of the analysed frame in seconds")
	fs.Float64Var(&opts.frameMs, "frame", 30, "analysed frame length in milliseconds")
	fs.IntVar(&opts.order, "order", 12, "prediction order")
	fs.BoolVar(&opts.windows, "windows", false, "print spectral properties of the analysis windows")
	fs.IntVar(&opts.size, "size", 1024, "window length for -windows")
	fs.BoolVar(&opts.verbose, "v", false, "verbose output")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: fxinfo [flags]\n\nFlags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	opts.sets = sets

	switch {
	case opts.rate <= 0:
		return options{}, fmt.Errorf("%w: -rate must be > 0: %g", errUsage, opts.rate)
	case opts.fft < 2 || opts.fft&(opts.fft-1) != 0:
		return options{}, fmt.Errorf("%w: -fft must be a power of two: %d", errUsage, opts.fft)
	case opts.frameMs <= 0 || opts.at < 0:
		return options{}, fmt.Errorf("%w: -frame must be > 0 and -at >= 0", errUsage)
	case opts.size < 2:
		return options{}, fmt.Errorf("%w: -size must be >= 2: %d", errUsage, opts.size)
	case len(opts.sets) > 0 && opts.unit == "":
		return options{}, fmt.Errorf("%w: -set needs -unit", errUsage)
	case opts.thd != 0 && opts.unit == "":
		return options{}, fmt.Errorf("%w: -thd needs -unit", errUsage)
	case opts.thd < 0 || opts.thd >= opts.rate/2:
		return options{}, fmt.Errorf("%w: -thd must be in (0, %g): %g", errUsage, opts.rate/2, opts.thd)
	}

	return opts, nil
}
