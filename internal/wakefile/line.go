// Package wakefile parses wakeup lines and files.
//
// A wakeup line holds up to four whitespace separated fields:
//
//	MAC [DESTINATION] [PORT] [SECUREON]
//
// Fields are untagged, so optional fields are told apart by their shape.
// A wakeup file is a sequence of such lines; blank lines and lines whose
// first non-blank character is '#' are ignored.
package wakefile

import (
	"strconv"
	"strings"

	"github.com/fgeck/homelab-wol/internal/models"
)

// addressSeparators mark a field as an intended address literal.
const addressSeparators = ".:-"

// fieldRule tries one interpretation of an optional field and reports
// whether it applied.
type fieldRule func(t models.WakeupTarget, field string) (models.WakeupTarget, bool)

// Interpretations of the second field, highest priority first. The last
// rule accepts anything.
var (
	secondOfTwo = []fieldRule{
		secureOnRule,
		portRule,
		destinationRule,
	}
	secondOfThree = []fieldRule{
		portRule,
		destinationRule,
	}
)

func secureOnRule(t models.WakeupTarget, field string) (models.WakeupTarget, bool) {
	so, err := models.ParseSecureOn(field)
	if err != nil {
		return t, false
	}
	return t.WithSecureOn(so), true
}

func portRule(t models.WakeupTarget, field string) (models.WakeupTarget, bool) {
	port, err := parsePort(field)
	if err != nil {
		return t, false
	}
	return t.WithPort(port), true
}

func destinationRule(t models.WakeupTarget, field string) (models.WakeupTarget, bool) {
	return t.WithDestination(models.ParseDestination(field)), true
}

func classify(t models.WakeupTarget, field string, rules []fieldRule) models.WakeupTarget {
	for _, rule := range rules {
		if next, ok := rule(t, field); ok {
			return next
		}
	}
	return t
}

// ParseLine parses a single wakeup line. The line must not be a comment.
// Errors are of type *ParseError.
func ParseLine(line string) (models.WakeupTarget, error) {
	target, perr := parseLine(line)
	if perr != nil {
		return models.WakeupTarget{}, perr
	}
	return target, nil
}

func parseLine(line string) (models.WakeupTarget, *ParseError) {
	fields := strings.Fields(line)

	switch len(fields) {
	case 0:
		return models.WakeupTarget{}, &ParseError{Kind: Empty}
	case 1, 2, 3, 4:
	default:
		return models.WakeupTarget{}, &ParseError{Kind: TooManyFields, Count: len(fields)}
	}

	mac, err := models.ParseMacAddress(fields[0])
	if err != nil {
		return models.WakeupTarget{}, &ParseError{Kind: InvalidHardwareAddress, Field: 1, Err: err}
	}
	target := models.NewWakeupTarget(mac)

	switch len(fields) {
	case 1:
		return target, nil
	case 2:
		return classify(target, fields[1], secondOfTwo), nil
	case 3:
		return parseThree(target, fields[1], fields[2])
	default:
		return parseFour(target, fields[1], fields[2], fields[3])
	}
}

// parseThree handles "MAC HOST PORT", "MAC HOST SECUREON" and
// "MAC PORT SECUREON". The third field decides: an address literal is
// SecureON, anything with address separators is a broken SecureON, and
// everything else must be a port.
func parseThree(target models.WakeupTarget, second, third string) (models.WakeupTarget, *ParseError) {
	so, err := models.ParseSecureOn(third)
	if err == nil {
		return classify(target.WithSecureOn(so), second, secondOfThree), nil
	}
	if strings.ContainsAny(third, addressSeparators) {
		return models.WakeupTarget{}, &ParseError{Kind: InvalidSecureOn, Field: 3, Err: err}
	}

	port, err := parsePort(third)
	if err != nil {
		return models.WakeupTarget{}, &ParseError{Kind: InvalidPort, Field: 3, Err: err}
	}
	return target.WithDestination(models.ParseDestination(second)).WithPort(port), nil
}

func parseFour(target models.WakeupTarget, host, portField, secureOn string) (models.WakeupTarget, *ParseError) {
	target = target.WithDestination(models.ParseDestination(host))

	port, err := parsePort(portField)
	if err != nil {
		return models.WakeupTarget{}, &ParseError{Kind: InvalidPort, Field: 3, Err: err}
	}
	target = target.WithPort(port)

	so, err := models.ParseSecureOn(secureOn)
	if err != nil {
		return models.WakeupTarget{}, &ParseError{Kind: InvalidSecureOn, Field: 4, Err: err}
	}
	return target.WithSecureOn(so), nil
}

// parsePort accepts decimal digits only, with optional leading zeros.
func parsePort(s string) (uint16, error) {
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, err
	}
	return uint16(n), nil
}
