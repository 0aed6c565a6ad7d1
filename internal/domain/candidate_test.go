package domain

import (
	"reflect"
	"strings"
	"testing"
)

func TestCandidateSubtitle(t *testing.T) {
	tests := []struct {
		name string
		c    Candidate
		want string
	}{
		{"both", Candidate{Category: "Chicken", Area: "Indian"}, "Chicken · Indian"},
		{"category only", Candidate{Category: "Dessert"}, "Dessert"},
		{"area only", Candidate{Area: " Thai "}, "Thai"},
		{"neither", Candidate{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Subtitle(); got != tt.want {
				t.Errorf("Subtitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCandidateMarkdown(t *testing.T) {
	c := Candidate{
		ID:           "52",
		Label:        "Chicken Curry",
		Category:     "Chicken",
		Tags:         []string{"Curry", "Spicy"},
		Instructions: "Fry onions.\r\nAdd chicken.",
	}
	md := c.Markdown()
	for _, want := range []string{"# Chicken Curry", "_Chicken_", "`Curry` `Spicy`", "## Instructions", "Fry onions.\nAdd chicken."} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
	if strings.Contains(md, "Photo") {
		t.Error("markdown should omit photo link without a thumbnail")
	}
}

func TestSplitTags(t *testing.T) {
	if got := SplitTags(""); got != nil {
		t.Errorf("SplitTags(\"\") = %v, want nil", got)
	}
	got := SplitTags("Curry, ,Spicy,")
	want := []string{"Curry", "Spicy"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitTags = %v, want %v", got, want)
	}
}
