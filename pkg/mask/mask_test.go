package mask_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/mask"
)

const phoneMask = "(99) 99999-9999"

func TestApply(t *testing.T) {
	cases := []struct {
		name    string
		pattern string
		raw     string
		want    string
	}{
		{name: "full phone", pattern: phoneMask, raw: "11987654321", want: "(11) 98765-4321"},
		{name: "partial phone", pattern: phoneMask, raw: "119", want: "(11) 9"},
		{name: "no trailing literal", pattern: phoneMask, raw: "11", want: "(11"},
		{name: "single digit", pattern: phoneMask, raw: "1", want: "(1"},
		{name: "empty", pattern: phoneMask, raw: "", want: ""},
		{name: "truncates", pattern: "9999999", raw: "123456789", want: "1234567"},
		{name: "drops rejected", pattern: "9999999", raw: "12a3-4", want: "1234"},
		{name: "letters", pattern: "aaa-999", raw: "ABC123", want: "ABC-123"},
		{name: "escaped literal", pattern: `\9-99`, raw: "12", want: "9-12"},
		{name: "no placeholders", pattern: "---", raw: "12", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := mask.Parse(tc.pattern).Apply(tc.raw)
			if got != tc.want {
				t.Fatalf("Apply(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestExtract(t *testing.T) {
	cases := []struct {
		name      string
		pattern   string
		displayed string
		want      string
	}{
		{name: "formatted phone", pattern: phoneMask, displayed: "(11) 98765-4321", want: "11987654321"},
		{name: "pasted digits", pattern: phoneMask, displayed: "11987654321", want: "11987654321"},
		{name: "loose separators", pattern: phoneMask, displayed: "11 98765 4321", want: "11987654321"},
		{name: "partial", pattern: phoneMask, displayed: "(11) 9", want: "119"},
		{name: "overflow", pattern: phoneMask, displayed: "(11) 98765-43219999", want: "11987654321"},
		{name: "garbage", pattern: "9999999", displayed: "abc", want: ""},
		{name: "empty", pattern: phoneMask, displayed: "", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := mask.Parse(tc.pattern).Extract(tc.displayed)
			if got != tc.want {
				t.Fatalf("Extract(%q) = %q, want %q", tc.displayed, got, tc.want)
			}
		})
	}
}

func TestCapacity(t *testing.T) {
	if got := mask.Parse(phoneMask).Capacity(); got != 11 {
		t.Fatalf("phone capacity = %d, want 11", got)
	}
	if got := mask.Parse("9999999").Capacity(); got != 7 {
		t.Fatalf("CNES capacity = %d, want 7", got)
	}
	if got := mask.Parse(`\9\a`).Capacity(); got != 0 {
		t.Fatalf("escaped capacity = %d, want 0", got)
	}
}

func TestRoundTripProperties(t *testing.T) {
	patterns := []string{phoneMask, "9999999", "aaa-999", "**/**", "99.999.999/9999-99"}
	alphabet := []rune("0123456789abcXYZ-() /.")
	rng := rand.New(rand.NewSource(42))

	for _, source := range patterns {
		p := mask.Parse(source)
		for i := 0; i < 500; i++ {
			raw := randomString(rng, alphabet, rng.Intn(p.Capacity()+6))

			displayed := p.Apply(raw)
			if got, want := p.Extract(displayed), p.Normalize(raw); got != want {
				t.Fatalf("%s: Extract(Apply(%q)) = %q, want %q", source, raw, got, want)
			}
			if got := p.Apply(p.Extract(displayed)); got != displayed {
				t.Fatalf("%s: Apply(Extract(%q)) = %q, not idempotent", source, displayed, got)
			}
		}
	}
}

func TestRoundTripDigitsTruncate(t *testing.T) {
	p := mask.Parse(phoneMask)
	digits := "119876543210987"
	for n := 0; n <= len(digits); n++ {
		raw := digits[:n]
		want := raw
		if len(want) > p.Capacity() {
			want = want[:p.Capacity()]
		}
		if got := p.Extract(p.Apply(raw)); got != want {
			t.Fatalf("Extract(Apply(%q)) = %q, want %q", raw, got, want)
		}
	}
}

func TestOnEdit(t *testing.T) {
	p := mask.Parse(phoneMask)
	cases := []struct {
		name  string
		input string
		want  mask.Edit
	}{
		{
			name:  "typing",
			input: "(11) 98",
			want:  mask.Edit{Raw: "1198", Displayed: "(11) 98"},
		},
		{
			name:  "first keystroke",
			input: "1",
			want:  mask.Edit{Raw: "1", Displayed: "(1"},
		},
		{
			name:  "paste",
			input: "11987654321",
			want:  mask.Edit{Raw: "11987654321", Displayed: "(11) 98765-4321"},
		},
		{
			name:  "backspace digit",
			input: "(11) ",
			want:  mask.Edit{Raw: "11", Displayed: "(11"},
		},
		{
			name:  "deleted literal is restored",
			input: "(11 98",
			want:  mask.Edit{Raw: "1198", Displayed: "(11) 98"},
		},
		{
			name:  "clear",
			input: "",
			want:  mask.Edit{},
		},
		{
			name:  "full retype without dash",
			input: "(31) 987654321",
			want:  mask.Edit{Raw: "31987654321", Displayed: "(31) 98765-4321"},
		},
		{
			name:  "full retype without space",
			input: "(31)98765-4321",
			want:  mask.Edit{Raw: "31987654321", Displayed: "(31) 98765-4321"},
		},
		{
			name:  "overflow keystroke",
			input: "(11) 98765-43210",
			want:  mask.Edit{Raw: "11987654321", Displayed: "(11) 98765-4321"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := p.OnEdit(tc.input)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("OnEdit mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func randomString(rng *rand.Rand, alphabet []rune, n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteRune(alphabet[rng.Intn(len(alphabet))])
	}
	return b.String()
}
