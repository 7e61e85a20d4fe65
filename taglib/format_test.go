package taglib

import (
	"errors"
	"testing"
)

func TestConversions(t *testing.T) {
	tests := []struct {
		name string
		v    interface{}
		conv Conversion
		want interface{}
	}{
		{"none passes through", 42, ConvNone, 42},
		{"str", 42, ConvStr, "42"},
		{"repr string quotes", "hi", ConvRepr, `"hi"`},
		{"ascii escapes non-ascii", "h☃i", ConvASCII, `"h\u2603i"`},
		{"ascii leaves ascii alone", "plain", ConvASCII, `"plain"`},
	}
	for _, test := range tests {
		got, err := FormatValue(test.v, test.conv, "")
		if err != nil {
			t.Errorf("%s: %v", test.name, err)
			continue
		}
		if got != test.want {
			t.Errorf("%s: got %#v, want %#v", test.name, got, test.want)
		}
	}
}

func TestBadConversion(t *testing.T) {
	if _, err := FormatValue(1, Conversion('z'), ""); !errors.Is(err, ErrBadConversion) {
		t.Errorf("got %v, want ErrBadConversion", err)
	}
}

func TestFormatSpecs(t *testing.T) {
	tests := []struct {
		v    interface{}
		spec string
		want string
	}{
		{42, "d", "42"},
		{42, "5d", "   42"},
		{42, "05d", "00042"},
		{-42, "05d", "-0042"},
		{42, "+d", "+42"},
		{42, "x", "2a"},
		{42, "X", "2A"},
		{42, "#x", "0x2a"},
		{5, "b", "101"},
		{5, "#b", "0b101"},
		{8, "o", "10"},
		{1234567, ",d", "1,234,567"},
		{1234567.5, ",.1f", "1,234,567.5"},
		{3.14159, ".2f", "3.14"},
		{3.14159, "10.2f", "      3.14"},
		{0.25, ".0%", "25%"},
		{1500.0, ".2e", "1.50e+03"},
		{97, "c", "a"},
		{"hello", "8s", "hello   "},
		{"hello", ">8s", "   hello"},
		{"hello", "^9s", "  hello  "},
		{"hello", "*^9s", "**hello**"},
		{"hello", ".3s", "hel"},
		{"hello", "", "hello"},
	}
	for _, test := range tests {
		got, err := FormatValue(test.v, ConvNone, test.spec)
		if err != nil {
			t.Errorf("format(%v, %q): %v", test.v, test.spec, err)
			continue
		}
		if got != test.want {
			t.Errorf("format(%v, %q) = %q, want %q", test.v, test.spec, got, test.want)
		}
	}
}

func TestBadFormatSpecs(t *testing.T) {
	tests := []struct {
		v    interface{}
		spec string
	}{
		{"text", "d"},      // integer verb on a string
		{3.5, "c"},         // character verb on a float
		{42, "5j"},         // unknown verb
		{42, "5."},         // missing precision digits
		{"text", "%"},      // float verb on a string
	}
	for _, test := range tests {
		if _, err := FormatValue(test.v, ConvNone, test.spec); !errors.Is(err, ErrBadFormatSpec) {
			t.Errorf("format(%v, %q) = %v, want ErrBadFormatSpec", test.v, test.spec, err)
		}
	}
}
