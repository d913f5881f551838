package scoring

import "testing"

func TestSkillCoverage_EmptyJobSkills(t *testing.T) {
	if got := SkillCoverage([]string{"go"}, nil); got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}
	if got := SkillCoverage(nil, []string{" ", ""}); got != 100 {
		t.Fatalf("expected 100 for blank job skills, got %d", got)
	}
}

func TestSkillCoverage_EmptyResumeSkills(t *testing.T) {
	got := SkillCoverage(nil, []string{"Go", "Postgres"})
	if got < 0 || got > 100 {
		t.Fatalf("out of range: %d", got)
	}
	if got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestSkillCoverage_ExactAndPartial(t *testing.T) {
	tests := []struct {
		name   string
		resume []string
		job    []string
		want   int
	}{
		{name: "case insensitive", resume: []string{"golang"}, job: []string{"GoLang"}, want: 100},
		{name: "resume contains job", resume: []string{"PostgreSQL"}, job: []string{"postgres"}, want: 100},
		{name: "job contains resume", resume: []string{"react"}, job: []string{"React Native"}, want: 100},
		{name: "fuzzy", resume: []string{"kubernetes"}, job: []string{"kubernetis"}, want: 100},
		{name: "no match", resume: []string{"java"}, job: []string{"python"}, want: 0},
		{name: "one of three", resume: []string{"docker"}, job: []string{"Docker", "Terraform", "Rust"}, want: 33},
		{name: "duplicates collapse", resume: []string{"go"}, job: []string{"Go", "go", "Rust"}, want: 50},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SkillCoverage(tc.resume, tc.job); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestSkillCoverage_Monotonic(t *testing.T) {
	job := []string{"Terraform", "Rust", "Kafka"}
	resume := []string{"docker"}

	before := SkillCoverage(resume, job)
	after := SkillCoverage(append(resume, "rust"), job)
	if after <= before {
		t.Fatalf("expected score to increase: before=%d after=%d", before, after)
	}

	again := SkillCoverage(append(resume, "rust", "Rust"), job)
	if again != after {
		t.Fatalf("adding an already covered skill changed the score: %d != %d", again, after)
	}
}

func TestStringSimilarity(t *testing.T) {
	for _, s := range []string{"", "go", "kubernetes", "résumé"} {
		if got := StringSimilarity(s, s); got != 1.0 {
			t.Fatalf("similarity(%q, %q) = %v", s, s, got)
		}
	}

	pairs := [][2]string{{"kitten", "sitting"}, {"go", "golang"}, {"", "abc"}, {"résumé", "resume"}}
	for _, p := range pairs {
		if a, b := StringSimilarity(p[0], p[1]), StringSimilarity(p[1], p[0]); a != b {
			t.Fatalf("asymmetric for %v: %v != %v", p, a, b)
		}
	}

	// kitten -> sitting: distance 3, max length 7
	if got := StringSimilarity("kitten", "sitting"); got != 4.0/7.0 {
		t.Fatalf("unexpected similarity %v", got)
	}
}
