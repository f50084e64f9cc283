package app

import (
	"fmt"
	"io"
	"os"

	"github.com/phillarmonic/figlet/figletlib"
)

// Domain: Version Display
// This file contains logic for displaying version information

// ShowVersion displays version information with ASCII art. figletlib only
// prints to os.Stdout, so the banner is skipped when w is anything else.
func ShowVersion(w io.Writer, version, commit, date string) error {
	if w == os.Stdout {
		if err := printBanner(); err != nil {
			return err
		}
	}
	writeVersionInfo(w, version, commit, date)
	return nil
}

// printBanner renders the gradient title on stdout
func printBanner() error {
	loader := figletlib.NewEmbededLoader()
	font, err := loader.GetFontByName("standard")
	if err != nil {
		return err
	}

	startColor, _ := figletlib.ParseColor("#00FF95")
	endColor, _ := figletlib.ParseColor("#00C2FF")
	gradientConfig := figletlib.ColorConfig{
		Mode:       figletlib.ColorModeGradient,
		StartColor: startColor,
		EndColor:   endColor,
	}

	fmt.Println()
	figletlib.PrintColoredMsg("exprdoc", font, 80, font.Settings(), "left", gradientConfig)
	return nil
}

// writeVersionInfo writes the tagline and build information
func writeVersionInfo(w io.Writer, version, commit, date string) {
	fmt.Fprintln(w, "exprdoc - expression trees as portable documents")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "By Phillarmonic Software <https://github.com/phillarmonic/exprdoc>")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Version %s\n", version)
	if commit != "unknown" {
		fmt.Fprintf(w, "commit: %s\n", commit)
	}
	if date != "unknown" {
		fmt.Fprintf(w, "built: %s\n", date)
	}
}
