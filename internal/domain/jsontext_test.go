package domain

import (
	"encoding/json"
	"testing"
)

func TestStringListValue(t *testing.T) {
	tests := []struct {
		name string
		list StringList
		want string
	}{
		{name: "nil list", list: nil, want: "[]"},
		{name: "empty list", list: StringList{}, want: "[]"},
		{name: "values", list: StringList{"Wei Chen", "Jun Wang"}, want: `["Wei Chen","Jun Wang"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := tt.list.Value()
			if err != nil {
				t.Fatalf("Value() error = %v", err)
			}
			if v.(string) != tt.want {
				t.Errorf("Value() = %q; want %q", v, tt.want)
			}
		})
	}
}

func TestStringListScan(t *testing.T) {
	tests := []struct {
		name string
		src  any
		want int
	}{
		{name: "json text", src: `["a","b"]`, want: 2},
		{name: "json bytes", src: []byte(`["a"]`), want: 1},
		{name: "null column", src: nil, want: 0},
		{name: "empty string", src: "", want: 0},
		{name: "legacy plain text", src: "not json", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l StringList
			if err := l.Scan(tt.src); err != nil {
				t.Fatalf("Scan(%v) error = %v", tt.src, err)
			}
			if len(l) != tt.want {
				t.Errorf("len = %d; want %d", len(l), tt.want)
			}
		})
	}

	var l StringList
	if err := l.Scan(42); err == nil {
		t.Error("Scan(int) should fail")
	}
}

func TestIntListRoundTrip(t *testing.T) {
	v, err := IntList{1, 2, 3}.Value()
	if err != nil {
		t.Fatalf("Value() error = %v", err)
	}
	var l IntList
	if err := l.Scan(v); err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(l) != 3 || l[0] != 1 || l[2] != 3 {
		t.Errorf("round trip = %v", l)
	}
}

func TestNilListsMarshalAsEmptyArray(t *testing.T) {
	p := Paper{Title: "Untitled"}
	b, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := decoded["authors"].([]any); !ok {
		t.Errorf("authors = %v; want empty array, not null", decoded["authors"])
	}
}
