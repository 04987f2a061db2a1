package i18n

import (
	"testing"

	"golang.org/x/text/language"
)

func TestParseTagMatchesSupportedLanguages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   language.Tag
		wantOK bool
	}{
		{in: "es", want: spanish, wantOK: true},
		{in: "es-MX", want: spanish, wantOK: true},
		{in: "en", want: english, wantOK: true},
		{in: "en-GB", want: english, wantOK: true},
		{in: "", want: spanish, wantOK: false},
		{in: "%%", want: spanish, wantOK: false},
	}
	for _, tc := range tests {
		got, ok := ParseTag(tc.in)
		if got != tc.want || ok != tc.wantOK {
			t.Fatalf("ParseTag(%q) = %v, %v; want %v, %v", tc.in, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestMatchTagsDefaultsToSpanish(t *testing.T) {
	t.Parallel()

	if got := MatchTags(nil); got != spanish {
		t.Fatalf("MatchTags(nil) = %v", got)
	}
	if got := MatchTags([]language.Tag{language.English}); got != english {
		t.Fatalf("MatchTags(en) = %v", got)
	}
}

func TestSupportedTagsReturnsCopy(t *testing.T) {
	t.Parallel()

	tags := SupportedTags()
	tags[0] = language.French
	if SupportedTags()[0] != spanish {
		t.Fatal("SupportedTags() exposed internal slice")
	}
	if !Ready() {
		t.Fatal("expected embedded catalogs to be registered")
	}
}
