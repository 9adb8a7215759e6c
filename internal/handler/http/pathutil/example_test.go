package pathutil_test

import (
	"fmt"

	"github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/pathutil"
)

// ExampleNormalizePath shows how per-row paths collapse into one metric label.
func ExampleNormalizePath() {
	fmt.Println(pathutil.NormalizePath("/api/legislators/123"))
	fmt.Println(pathutil.NormalizePath("/api/legislators/456"))
	fmt.Println(pathutil.NormalizePath("/api/news/slug/reforma-electoral"))

	// Output:
	// /api/legislators/:id
	// /api/legislators/:id
	// /api/news/slug/:slug
}
