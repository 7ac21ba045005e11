package wdfsdk

import "testing"

func TestFuncIndexString(t *testing.T) {
	if got := FnDeviceCreate.String(); got != "WdfDeviceCreate" {
		t.Errorf("String() = %q, want WdfDeviceCreate", got)
	}
	if got := FuncIndex(999).String(); got != "WdfFunction(999)" {
		t.Errorf("String() = %q, want WdfFunction(999)", got)
	}
	for i := FuncIndex(0); i < funcIndexCount; i++ {
		if funcNames[i] == "" {
			t.Errorf("entry point %d has no name", i)
		}
	}
}

func TestFuncTableAvailable(t *testing.T) {
	noop := func(globals GlobalsHandle, args ...any) NTStatus { return StatusSuccess }

	slots := make([]RawFunc, 4)
	slots[0] = noop
	slots[2] = noop
	table := NewFuncTable(FrameworkVersion{2, 33}, slots)

	tests := []struct {
		name string
		idx  FuncIndex
		want bool
	}{
		{"populated first", 0, true},
		{"interior nil slot", 1, false},
		{"populated interior", 2, true},
		{"trailing nil slot", 3, false},
		{"past the table", 4, false},
		{"far past the table", 100, false},
		{"negative", -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := table.Available(tt.idx); got != tt.want {
				t.Errorf("Available(%d) = %v, want %v", tt.idx, got, tt.want)
			}
		})
	}

	var nilTable *FuncTable
	if nilTable.Available(0) {
		t.Error("nil table reported an entry point available")
	}
}

func TestNewFuncTableCopiesSlots(t *testing.T) {
	noop := func(globals GlobalsHandle, args ...any) NTStatus { return StatusSuccess }
	slots := []RawFunc{noop}
	table := NewFuncTable(FrameworkVersion{2, 33}, slots)

	slots[0] = nil
	if !table.Available(0) {
		t.Error("mutating the source slice reached into the table")
	}
}

func TestFrameworkVersionAtLeast(t *testing.T) {
	tests := []struct {
		name string
		v, o FrameworkVersion
		want bool
	}{
		{"equal", FrameworkVersion{2, 33}, FrameworkVersion{2, 33}, true},
		{"newer minor", FrameworkVersion{2, 34}, FrameworkVersion{2, 33}, true},
		{"older minor", FrameworkVersion{2, 31}, FrameworkVersion{2, 33}, false},
		{"newer major", FrameworkVersion{3, 0}, FrameworkVersion{2, 33}, true},
		{"older major", FrameworkVersion{1, 99}, FrameworkVersion{2, 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.AtLeast(tt.o); got != tt.want {
				t.Errorf("%s.AtLeast(%s) = %v, want %v", tt.v, tt.o, got, tt.want)
			}
		})
	}
}

func TestParseFrameworkVersion(t *testing.T) {
	v, err := ParseFrameworkVersion("2.33")
	if err != nil {
		t.Fatalf("ParseFrameworkVersion: %v", err)
	}
	if v != (FrameworkVersion{2, 33}) {
		t.Errorf("got %s, want 2.33", v)
	}

	for _, bad := range []string{"", "2", "2.x", "a.b", "1.2.3"} {
		if _, err := ParseFrameworkVersion(bad); err == nil {
			t.Errorf("ParseFrameworkVersion(%q) succeeded, want error", bad)
		}
	}
}
