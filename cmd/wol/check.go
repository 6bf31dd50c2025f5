package main

import (
	"fmt"
	"io"

	"github.com/fgeck/homelab-wol/internal/wakefile"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check FILE",
	Short: "Validate a wakeup file",
	Long:  `Parse a wakeup file and report every invalid line without sending any packets. Use '-' to read from standard input.`,
	Args:  cobra.ExactArgs(1),
	RunE:  checkWakeFile,
}

func checkWakeFile(cmd *cobra.Command, args []string) error {
	r, closeFn, err := openWakeFile(args[0])
	if err != nil {
		log.Error().Err(err).Str("file", args[0]).Msg("failed to open wakeup file")
		return err
	}
	defer closeFn()

	return reportWakeFile(cmd.OutOrStdout(), r)
}

// reportWakeFile prints one line per target and per error, then a summary.
func reportWakeFile(w io.Writer, r io.Reader) error {
	var valid, invalid int
	for target, err := range wakefile.FromReader(r) {
		if err != nil {
			invalid++
			fmt.Fprintf(w, "  error: %v\n", err)
			continue
		}
		valid++

		line := "  ok: " + target.HardwareAddress().String()
		if dest, ok := target.Destination(); ok {
			line += " destination=" + dest.String()
		}
		if port, ok := target.Port(); ok {
			line += fmt.Sprintf(" port=%d", port)
		}
		if _, ok := target.SecureOn(); ok {
			line += " secureon=(configured)"
		}
		fmt.Fprintln(w, line)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Targets: %d valid, %d invalid\n", valid, invalid)

	if invalid > 0 {
		return fmt.Errorf("wakeup file has %d invalid line(s)", invalid)
	}
	return nil
}
