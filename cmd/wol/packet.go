package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/fgeck/homelab-wol/internal/models"
	"github.com/fgeck/homelab-wol/internal/packet"
	"github.com/spf13/cobra"
)

var packetPasswd string

var packetCmd = &cobra.Command{
	Use:   "packet MAC-ADDRESS",
	Short: "Print the magic packet for a hardware address as hex",
	Args:  cobra.ExactArgs(1),
	RunE:  printPacket,
}

var inspectCmd = &cobra.Command{
	Use:   "inspect HEX",
	Short: "Decode a hex encoded magic packet",
	Long:  `Decode a magic packet and print the hardware address and SecureON password it carries. Whitespace and ':' in the input are ignored.`,
	Args:  cobra.ExactArgs(1),
	RunE:  inspectPacket,
}

func init() {
	packetCmd.Flags().StringVar(&packetPasswd, "passwd", "", "append a SecureON password")
}

func printPacket(cmd *cobra.Command, args []string) error {
	targets, err := cliTargets(args, packetPasswd)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(packet.ForTarget(targets[0])))
	return nil
}

func inspectPacket(cmd *cobra.Command, args []string) error {
	mac, secureOn, err := decodeHexPacket(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Hardware address: %s\n", mac)
	if secureOn != nil {
		fmt.Fprintf(out, "SecureON: %s\n", secureOn)
	}
	return nil
}

func decodeHexPacket(s string) (models.MacAddress, *models.SecureOn, error) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', ':':
			return -1
		}
		return r
	}, s)

	raw, err := hex.DecodeString(s)
	if err != nil {
		return models.MacAddress{}, nil, fmt.Errorf("invalid hex: %w", err)
	}
	return packet.Decode(raw)
}
