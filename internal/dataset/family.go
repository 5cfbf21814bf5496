package dataset

import "strings"

// Family groups a launch vehicle name into one of four coarse buckets.
// The check order is significant: "SLV" is a substring of both "PSLV" and
// "GSLV", so those are matched first.
func Family(vehicle string) string {
	name := strings.ToUpper(vehicle)
	switch {
	case strings.Contains(name, "PSLV"):
		return "PSLV"
	case strings.Contains(name, "GSLV"), strings.Contains(name, "LVM3"):
		return "GSLV/LVM3"
	case strings.Contains(name, "SLV"):
		return "SLV/ASLV"
	}
	return "Other"
}
