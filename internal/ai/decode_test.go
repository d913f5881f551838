package ai

import "testing"

type sample struct {
	Score  float64  `json:"score"`
	Skills []string `json:"skills"`
	Note   string   `json:"note"`
}

func TestExtractJSON(t *testing.T) {
	cases := map[string]string{
		"```json\n{\"a\":1}\n```":       `{"a":1}`,
		"Sure! Here it is: {\"a\":1} ok": `{"a":1}`,
		`["go","sql"]`:                   `["go","sql"]`,
		"   ":                            "",
	}
	for in, want := range cases {
		if got := ExtractJSON(in); got != want {
			t.Fatalf("ExtractJSON(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDecodeJSON_Weak(t *testing.T) {
	out := sample{Note: "default"}
	if err := DecodeJSON(`{"score":"85","skills":"Go"}`, &out); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out.Score != 85 {
		t.Fatalf("expected 85, got %v", out.Score)
	}
	if len(out.Skills) != 1 || out.Skills[0] != "Go" {
		t.Fatalf("unexpected skills: %+v", out.Skills)
	}
	if out.Note != "default" {
		t.Fatalf("expected preset default to survive, got %q", out.Note)
	}
}

func TestDecodeJSON_Invalid(t *testing.T) {
	var out sample
	if err := DecodeJSON("not json at all", &out); err == nil {
		t.Fatalf("expected error")
	}
	if err := DecodeJSON("", &out); err != ErrEmptyResponse {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}
