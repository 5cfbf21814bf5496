package dataset

import "testing"

func TestFamily(t *testing.T) {
	tests := []struct {
		vehicle string
		want    string
	}{
		{"PSLV-C45", "PSLV"},
		{"pslv-d1", "PSLV"},
		{"GSLV Mk III", "GSLV/LVM3"},
		{"GSLV Mk II F10", "GSLV/LVM3"},
		{"LVM3 M4", "GSLV/LVM3"},
		{"SLV-3", "SLV/ASLV"},
		{"ASLV-D2", "SLV/ASLV"},
		{"SSLV-D1", "SLV/ASLV"},
		{"Falcon 9", "Other"},
		{"", "Other"},
	}
	for _, tt := range tests {
		if got := Family(tt.vehicle); got != tt.want {
			t.Errorf("Family(%q) = %q, want %q", tt.vehicle, got, tt.want)
		}
	}
}
