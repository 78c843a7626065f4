package catalog

import "testing"

func TestSlugify(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Python Fundamentals":     "python_fundamentals",
		"Async/Await":             "async_await",
		"  FastAPI   Basics  ":    "fastapi_basics",
		"Monitoring & Alerting":   "monitoring_alerting",
		"REST APIs 101":           "rest_apis_101",
		"---":                     "",
		"SQLAlchemy ORM (Part 2)": "sqlalchemy_orm_part_2",
	}

	for input, expected := range cases {
		if got := Slugify(input); got != expected {
			t.Fatalf("Slugify(%q) = %q, expected %q", input, got, expected)
		}
	}
}

func TestValidateSlug(t *testing.T) {
	t.Parallel()

	for _, slug := range []string{"python_fundamentals", "a", "topic_01", "x9"} {
		if err := ValidateSlug(slug); err != nil {
			t.Fatalf("ValidateSlug(%q) returned error: %v", slug, err)
		}
	}

	for _, slug := range []string{"", "_leading", "trailing_", "two__underscores", "Upper", "with space", "dash-ed"} {
		if err := ValidateSlug(slug); err == nil {
			t.Fatalf("expected error for slug %q", slug)
		}
	}
}
