package address

import (
	"errors"
	"testing"

	"github.com/jacobe603/quote-builder/internal/quote/domain"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		want    Address
		wantErr bool
	}{
		{name: "package", raw: "2", want: Address{Package: 2}},
		{name: "primary", raw: "2.3", want: Address{Package: 2, Primary: 3}},
		{name: "sub", raw: "2.3.1", want: Address{Package: 2, Primary: 3, Sub: 1}},
		{name: "surrounding_space", raw: " 1.4 ", want: Address{Package: 1, Primary: 4}},
		{name: "inner_space", raw: " 1 . 2 ", wantErr: true},
		{name: "plus_sign", raw: "+1.2", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
		{name: "letters", raw: "abc", wantErr: true},
		{name: "trailing_dot", raw: "1.", wantErr: true},
		{name: "zero", raw: "1.0", wantErr: true},
		{name: "negative", raw: "-1.2", wantErr: true},
		{name: "too_deep", raw: "1.2.3.4", wantErr: true},
		{name: "mixed", raw: "1.2x", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.raw)
			if tc.wantErr {
				if !errors.Is(err, domain.ErrInvalidAddress) {
					t.Fatalf("expected invalid address error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestParseLineRequiresPrimary(t *testing.T) {
	if _, err := ParseLine("3"); !errors.Is(err, domain.ErrInvalidAddress) {
		t.Fatalf("expected invalid address error, got %v", err)
	}
	addr, err := ParseLine("3.1.2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !addr.HasSub() || addr.Depth() != 3 {
		t.Fatalf("expected a sub-line address, got %+v", addr)
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, raw := range []string{"1", "1.2", "10.4.7"} {
		addr, err := Parse(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if addr.String() != raw {
			t.Fatalf("expected %q, got %q", raw, addr.String())
		}
	}
}
